package main

import (
	"github.com/spf13/cobra"

	"github.com/cadre-sh/cadre/internal/llm"
	"github.com/cadre-sh/cadre/internal/logger"
	"github.com/cadre-sh/cadre/internal/persona"
	"github.com/cadre-sh/cadre/internal/tui"
)

func newChatCmd() *cobra.Command {
	var personaFlag string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with a persona in an interactive panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(true)
			if err != nil {
				return err
			}

			p, err := rt.defaultPersona(personaFlag)
			if err != nil {
				return err
			}

			if rt.cfg.Personas.Watch {
				if watcher := persona.Watch(rt.registry); watcher != nil {
					defer watcher.Close()
				}
			}

			modelName := "unknown"
			if models, err := rt.provider.ListModels(cmd.Context()); err == nil {
				if m, err := llm.SelectModel(models, rt.cfg.Models.Preferred); err == nil {
					modelName = m.Name
				}
			}

			logger.Info("starting chat with persona %s", p.ID)
			app := tui.NewApp(rt.orch, rt.registry, rt.handoffs, rt.workflows, rt.cfg, p.ID)
			return app.Run(modelName)
		},
	}

	cmd.Flags().StringVarP(&personaFlag, "persona", "p", "", "persona to start with")
	return cmd
}
