package main

import (
	"fmt"
	"strings"
	"time"
)

const usage = `Usage:
  weekprogress [--date YYYY-MM-DD]
  weekprogress journal [N]`

type launchOptions struct {
	reference time.Time
}

// parseLaunchArgs accepts `--date YYYY-MM-DD` or `--date=YYYY-MM-DD`. The date
// is interpreted in the local zone.
func parseLaunchArgs(args []string) (launchOptions, error) {
	var opts launchOptions
	for i := 0; i < len(args); i++ {
		arg := args[i]
		var value string
		switch {
		case arg == "--date" || arg == "-d":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("%s requires a value", arg)
			}
			i++
			value = args[i]
		case strings.HasPrefix(arg, "--date="):
			value = strings.TrimPrefix(arg, "--date=")
		default:
			return opts, fmt.Errorf("unknown argument %q", arg)
		}
		date, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(value), time.Local)
		if err != nil {
			return opts, fmt.Errorf("invalid date %q: want YYYY-MM-DD", value)
		}
		opts.reference = date
	}
	return opts, nil
}
