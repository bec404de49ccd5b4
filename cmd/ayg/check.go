package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/ayg/internal/editor"
)

// errMisspelled makes check exit non-zero without printing an error.
var errMisspelled = errors.New("misspelled words found")

func newCheckCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "List the words in each file that are not in the dictionary",
		Long: `Check reads each file and prints the words missing from the dictionary,
one line per file. The exit status is 1 when any word is missing.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			surface := editor.New(s.dict, nil, nil, editor.WithLogger(s.logger))
			out := cmd.OutOrStdout()
			found := false
			for _, path := range args {
				if err := surface.OpenFile(path); err != nil {
					return err
				}
				incorrect := surface.CheckWholeDocument()
				if len(incorrect) == 0 {
					fmt.Fprintf(out, "%s: ok\n", path)
					continue
				}
				found = true
				fmt.Fprintf(out, "%s: %s\n", path, strings.Join(incorrect, ", "))
			}
			if found {
				return errMisspelled
			}
			return nil
		},
	}
}
