package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/ayg/internal/spell/corrector"
)

func newUnscrambleCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "unscramble WORD...",
		Short: "Print the dictionary word each argument unscrambles to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			defer s.Close()

			c := corrector.New(s.dict, corrector.WithMaxLength(s.cfg.Spell.MaxWordLength))
			out := cmd.OutOrStdout()
			for _, word := range args {
				if s.dict.Contains(word) {
					fmt.Fprintf(out, "%s: correct\n", word)
					continue
				}
				fixed, ok, err := c.Correct(cmd.Context(), word)
				switch {
				case errors.Is(err, corrector.ErrTooLong):
					fmt.Fprintf(out, "%s: too long (max %d letters)\n", word, c.MaxLength())
				case err != nil:
					return err
				case ok:
					fmt.Fprintf(out, "%s: %s\n", word, fixed)
				default:
					fmt.Fprintf(out, "%s: no match\n", word)
				}
			}
			return nil
		},
	}
}
