// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
	"unicode"

	"github.com/urfave/cli/v3"

	"github.com/slectl/slectl/internal/log"
	"github.com/slectl/slectl/internal/output"
)

// DateLayout is the format of --from-date.
const DateLayout = "2006-01-02"

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator runs before every subcommand. It raises the log level
// when --debug is set.
func GlobalFlagsValidator(_ context.Context, c *cli.Command) error {
	if c.Bool("debug") {
		log.EnableDebug()
	}
	return nil
}

func OutputValidator(value any) error {
	if !slices.Contains(output.Formats, value.(string)) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

// StagingValidator accepts a single staging letter.
func StagingValidator(value any) error {
	s := []rune(value.(string))
	if len(s) != 1 || !unicode.IsLetter(s[0]) {
		return errors.New("staging must be a single letter")
	}
	return nil
}

// DaysValidator accepts a positive number of days.
func DaysValidator(value any) error {
	if value.(int) <= 0 {
		return errors.New("days must be a nonzero positive number")
	}
	return nil
}

// RequestTypeValidator accepts the request types that can be listed.
func RequestTypeValidator(value any) error {
	if value != "submit" && value != "delete" {
		return errors.New("must be one of [submit delete]")
	}
	return nil
}

// DateValidator returns a validator for YYYY-MM-DD dates strictly before the
// day of now.
func DateValidator(now func() time.Time) FlagValidatorType {
	return func(value any) error {
		_, err := DaysSince(value.(string), now())
		return err
	}
}

// DaysSince returns the number of whole days between date and the day of now.
// date must lie in the past.
func DaysSince(date string, now time.Time) (int, error) {
	d, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return 0, fmt.Errorf("not a valid date: %q, use YYYY-MM-DD format", date)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !d.Before(today) {
		return 0, fmt.Errorf("date %s is in the future", date)
	}
	return int(today.Sub(d).Hours() / 24), nil //nolint:mnd
}
