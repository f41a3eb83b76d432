// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/slectl/slectl/internal/meta"
)

const bashCompletionScript = `# bash completion for slectl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_slectl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "report staging-report onlybuild staging-onlybuild requests accepted reviews bugowners artifacts packages users binary incident completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--debug -d --osc-instance -A --osc-config --smelt-url"

    case "$cmd" in
        report)
            local opts="$common --from -f --to -t --from-revision --to-revision --delta --color -c --output -o"
            ;;
        staging-report)
            local opts="$common --project -p --delta --color -c --output -o"
            ;;
        onlybuild)
            local opts="$common --project -p --skip --output -o"
            ;;
        staging-onlybuild|artifacts)
            local opts="$common --project -p --output -o"
            ;;
        requests)
            local opts="$common --project -p --type -t --days -d --from-date -f --filter -F --sort -s --ago --output -o"
            ;;
        accepted)
            local opts="$common --project -p --days -d --ago --output -o"
            ;;
        reviews)
            local opts="$common --project -p --staging -s --group -g --pager --no-pager"
            ;;
        bugowners)
            local opts="$common --project -p --groups --pager --no-pager"
            ;;
        packages)
            local opts="$common --project -p --product -P --build-project --productcomposer --color -c --titles --output -o"
            ;;
        users)
            local opts="$common --group -g --login -l --email -e --name -n --color -c --titles --output -o"
            ;;
        binary|incident)
            local opts="$common --output -o"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --type|-t)
            if [[ "$cmd" == "requests" ]]; then
                COMPREPLY=( $(compgen -W "submit delete" -- "$cur") )
                return 0
            fi
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _slectl slectl
`

const zshCompletionScript = `#compdef slectl

_slectl() {
  local -a cmds
  cmds=(
    'report:report package movements between two projects'
    'staging-report:report package movements on a staging project'
    'onlybuild:list the packages that build in each repository of a project'
    'staging-onlybuild:list the staged packages for a test project prjconf'
    'requests:list requests accepted in a given time'
    'accepted:list accepted submit and delete requests'
    'reviews:review submit and delete requests of a staging project'
    'bugowners:review bugowner requests'
    'artifacts:list the image and product artifacts of a project'
    'packages:show build service information for binary packages'
    'users:search build service information for a user or group'
    'binary:show the channels a binary is shipped in'
    'incident:show the repositories of maintenance incidents'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-d --debug)'{-d,--debug}'[debug output]'
  '(-A --osc-instance)'{-A,--osc-instance}'[build service API URL]:url'
  '--osc-config[oscrc to use]:file:_files'
  '--smelt-url[SMELT GraphQL endpoint]:url'
  )

  local -a out
  out=('(-o --output)'{-o,--output}'[output format]:format:(text json yaml)')

  if (( CURRENT == 2 )); then
    _describe -t commands 'slectl commands' cmds
    return
  fi

  case $words[2] in
    report)
      _arguments -C $common $out \
        '(-f --from)'{-f,--from}'[origin project]:project' \
        '(-t --to)'{-t,--to}'[target project]:project' \
        '--from-revision[origin revision]:revision' \
        '--to-revision[target revision]:revision' \
        '--delta[print the structural delta]' \
        '(-c --color)'{-c,--color}'[enable colored text]'
      ;;
    staging-report)
      _arguments -C $common $out \
        '(-p --project)'{-p,--project}'[project]:project' \
        '--delta[print the structural delta]' \
        '(-c --color)'{-c,--color}'[enable colored text]'
      ;;
    onlybuild)
      _arguments -C $common $out \
        '(-p --project)'{-p,--project}'[project]:project' \
        '--skip[repositories to leave out]:repository'
      ;;
    staging-onlybuild|artifacts)
      _arguments -C $common $out \
        '(-p --project)'{-p,--project}'[project]:project'
      ;;
    requests)
      _arguments -C $common $out \
        '(-p --project)'{-p,--project}'[project]:project' \
        '(-t --type)'{-t,--type}'[request type]:type:(submit delete)' \
        '(-d --days -f --from-date)'{-d,--days}'[days]:days' \
        '(-d --days -f --from-date)'{-f,--from-date}'[date]:date' \
        '(-F --filter)'{-F,--filter}'[row filters]:filters' \
        '(-s --sort)'{-s,--sort}'[sort columns]:columns' \
        '--ago[relative times]'
      ;;
    accepted)
      _arguments -C $common $out \
        '(-p --project)'{-p,--project}'[project]:project' \
        '(-d --days)'{-d,--days}'[days]:days' \
        '--ago[relative times]'
      ;;
    reviews)
      _arguments -C $common \
        '(-p --project)'{-p,--project}'[project]:project' \
        '(-s --staging)'{-s,--staging}'[staging letter]:letter' \
        '(-g --group)'{-g,--group}'[review group]:group' \
        '--pager[diff pager]:pager' \
        '--no-pager[do not page diffs]'
      ;;
    bugowners)
      _arguments -C $common \
        '(-p --project)'{-p,--project}'[project]:project' \
        '--groups[review groups]:groups' \
        '--pager[diff pager]:pager' \
        '--no-pager[do not page diffs]'
      ;;
    packages)
      _arguments -C $common $out \
        '(-p --project)'{-p,--project}'[project]:project' \
        '(-P --product)'{-P,--product}'[product]:product' \
        '--build-project[build project]:project' \
        '--productcomposer[product definition]:spec' \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '--titles[show titles]' \
        '*:binary'
      ;;
    users)
      _arguments -C $common $out \
        '(-g --group -l --login -e --email -n --name)'{-g,--group}'[group]' \
        '(-g --group -l --login -e --email -n --name)'{-l,--login}'[login]' \
        '(-g --group -l --login -e --email -n --name)'{-e,--email}'[email]' \
        '(-g --group -l --login -e --email -n --name)'{-n,--name}'[name]' \
        '(-c --color)'{-c,--color}'[enable colored text]' \
        '--titles[show titles]' \
        '1:text'
      ;;
    binary|incident)
      _arguments -C $common $out '*:name'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _slectl slectl
`

func completionCommandAction(_ context.Context, cmd *cli.Command) error {
	w := writer(cmd)
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL.
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		fmt.Fprintln(cmd.Root().ErrWriter, "usage: slectl completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "slectl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
