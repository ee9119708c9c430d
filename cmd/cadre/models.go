package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cadre-sh/cadre/internal/config"
	"github.com/cadre-sh/cadre/internal/llm"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models and show which one would serve",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithOptions(config.LoadOptions{Path: configPath})
			if err != nil {
				return err
			}

			provider := llm.NewAnthropicProvider(cfg)
			models, err := provider.ListModels(cmd.Context())
			if err != nil {
				return err
			}

			selected, err := llm.SelectModel(models, cfg.Models.Preferred)
			if err != nil {
				return err
			}

			for _, m := range models {
				mark := " "
				if m.ID == selected.ID {
					mark = "*"
				}
				fmt.Printf("%s %-32s %-24s %s\n", mark, m.ID, m.Name, m.Family)
			}
			return nil
		},
	}
}
