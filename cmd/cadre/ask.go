package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cadre-sh/cadre/internal/llm"
	"github.com/cadre-sh/cadre/internal/ui"
)

func newAskCmd() *cobra.Command {
	var personaFlag string

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a persona a single question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(true)
			if err != nil {
				return err
			}

			p, err := rt.defaultPersona(personaFlag)
			if err != nil {
				return err
			}

			question := strings.Join(args, " ")
			out := ui.NewOutputHandler()
			out.PersonaBanner(p)

			if rl, ok := rt.provider.(*llm.RateLimitedProvider); ok {
				rl.SetBackoffWaiter(ui.NewSpinner(out))
			}

			result, err := rt.orch.Respond(cmd.Context(), p.ID, nil, question, out)
			if err != nil {
				return err
			}

			out.Suggestions(result.Suggestions)
			return nil
		},
	}

	cmd.Flags().StringVarP(&personaFlag, "persona", "p", "", "persona to ask")
	return cmd
}
