package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/slectl/slectl/internal/command"
	"github.com/slectl/slectl/internal/meta"
)

type Subcommand struct {
	ID          string
	Short       string
	Usage       string
	Flags       []Flag
	Exclusive   [][]string
	Description string
}

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
	Env         string
	Required    bool
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

const mdTemplate = `# slectl {{.ID}}

{{.Short}}

## Usage

` + "```" + `
{{.Usage}}
` + "```" + `

## Flags

| Flag | Description | Default |
| ---- | ----------- | ------- |
{{- range .Flags}}
| ` + "`{{.Syntax}}`" + ` | {{.Description}}{{if .Required}} (required){{end}}{{if .Env}} [{{.Env}}]{{end}} | {{.Default}} |
{{- end}}
{{- if .Exclusive}}

Exactly one of each group must be given:
{{range .Exclusive}}
- {{join . ", "}}
{{- end}}
{{- end}}

_slectl {{.Version}}, {{.Date}}_
`

const manTemplate = `.TH SLECTL-{{.IDUpper}} 1 "{{.Date}}" "slectl {{.Version}}" "slectl manual"
.SH NAME
slectl-{{.ID}} \- {{.Short}}
.SH SYNOPSIS
{{.Usage}}
.SH OPTIONS
{{- range .Flags}}
.TP
.B {{.Syntax}}
{{.Description}}{{if .Default}} (default: {{.Default}}){{end}}
{{- end}}
`

func main() {
	if len(os.Args) < 2 { //nolint:mnd
		fmt.Fprintln(os.Stderr, "usage: docsgen <docs folder>")
		os.Exit(1)
	}
	docs := os.Args[1]

	app := command.NewApp(meta.Meta{})
	common := flags(app.Flags)

	types := []Outputs{
		{Template: mdTemplate, Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: manTemplate, Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "slectl-", Suffix: ".1"},
	}

	for _, cmd := range app.Commands {
		sub := Subcommand{
			ID:    cmd.Name,
			Short: cmd.Usage,
			Usage: cmd.UsageText,
		}

		merged := append(flags(cmd.Flags), common...)
		for _, group := range cmd.MutuallyExclusiveFlags {
			var names []string
			for _, alts := range group.Flags {
				merged = append(merged, flags(alts)...)
				for _, f := range alts {
					names = append(names, "--"+f.Names()[0])
				}
			}
			sub.Exclusive = append(sub.Exclusive, names)
		}
		sort.Slice(merged, func(i, j int) bool {
			return merged[i].ID < merged[j].ID
		})
		sub.Flags = merged

		metadata := TemplateData{
			Subcommand: sub,
			Date:       time.Now().Format("January 2, 2006"),
			Version:    getVersion(),
			IDUpper:    strings.ToUpper(sub.ID),
		}

		for _, t := range types {
			if err := generate(t, metadata); err != nil {
				panic(err)
			}
		}
	}
}

func generate(t Outputs, data TemplateData) error {
	if err := os.MkdirAll(t.Folder, 0o755); err != nil { //nolint:mnd
		return err
	}

	path := filepath.Join(t.Folder, t.Prefix+data.ID+t.Suffix)
	fmt.Println("Generating", path)

	tmpl, err := template.New(filepath.Base(path)).
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(t.Template)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return tmpl.Execute(file, data)
}

// flags describes the documented flags in fs.
func flags(fs []cli.Flag) []Flag {
	var out []Flag
	for _, f := range fs {
		doc, ok := f.(cli.DocGenerationFlag)
		if !ok {
			continue
		}

		names := f.Names()
		syntax := make([]string, 0, len(names))
		for _, n := range names {
			if len(n) == 1 {
				syntax = append(syntax, "-"+n)
			} else {
				syntax = append(syntax, "--"+n)
			}
		}

		fl := Flag{
			ID:          names[0],
			Syntax:      strings.Join(syntax, ", "),
			Description: doc.GetUsage(),
			Env:         strings.Join(doc.GetEnvVars(), ", "),
		}
		if doc.TakesValue() {
			fl.Syntax += " " + strings.ToUpper(strings.ReplaceAll(names[0], "-", "_"))
			fl.Default = doc.GetValue()
		}
		if r, ok := f.(cli.RequiredFlag); ok {
			fl.Required = r.IsRequired()
		}
		out = append(out, fl)
	}
	return out
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
