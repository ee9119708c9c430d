package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cadre-sh/cadre/internal/ui"
)

func newAnnotateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "annotate <file>",
		Short: "Suggest specialist reviews for lines of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(false)
			if err != nil {
				return err
			}

			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			engine := rt.mappingEngine(cmd)
			suggestions := engine.ProvideSuggestions(string(content))

			out := ui.NewOutputHandler()
			if len(suggestions) == 0 {
				out.Info("nothing to flag")
				return nil
			}

			for _, s := range suggestions {
				marker := s.Emoji
				if marker == "" {
					marker = "•"
				}
				fmt.Printf("%s:%d:%d  %s %s  →  %s\n",
					args[0], s.Line+1, s.Column+1, marker, s.Label, s.PersonaID)
			}
			return nil
		},
	}
}
