// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var negativeNumberRegex = regexp.MustCompile(`^-\.?\d`)

// rewriteNegativeArgs lets negative coordinates be passed as positional
// arguments. pflag would read "-101.02" as a shorthand flag, so when such an
// argument is present flags are moved first and positionals after a "--".
func rewriteNegativeArgs(cmd *cobra.Command, args []string) []string {
	var (
		opts, positional []string
		negative         bool
	)

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			positional = append(positional, args[i+1:]...)
			i = len(args)
		case negativeNumberRegex.MatchString(arg):
			negative = true

			positional = append(positional, arg)
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			opts = append(opts, arg)

			if takesValue(cmd, arg) && i+1 < len(args) {
				i++

				opts = append(opts, args[i])
			}
		default:
			if len(positional) == 0 && isSubcommand(cmd, arg) {
				return args
			}

			positional = append(positional, arg)
		}
	}

	if !negative {
		return args
	}

	rewritten := make([]string, 0, len(opts)+len(positional)+1)
	rewritten = append(rewritten, opts...)
	rewritten = append(rewritten, "--")

	return append(rewritten, positional...)
}

// Persistent flags aren't merged into Flags() until the command executes, so
// both sets are checked.
func takesValue(cmd *cobra.Command, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}

	for _, flags := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
		var f *pflag.Flag

		switch {
		case strings.HasPrefix(arg, "--"):
			f = flags.Lookup(arg[2:])
		case len(arg) == 2:
			f = flags.ShorthandLookup(arg[1:])
		}

		if f != nil {
			return f.NoOptDefVal == ""
		}
	}

	return false
}

func isSubcommand(cmd *cobra.Command, name string) bool {
	for _, c := range cmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}

	return name == "help" || name == "completion"
}
