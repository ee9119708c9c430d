package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cadre-sh/cadre/internal/ui"
)

func newPersonasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "personas",
		Short: "List and inspect available personas",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPersonas()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a persona's full definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showPersona(args[0])
		},
	})
	return cmd
}

func listPersonas() error {
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}
	out := ui.NewOutputHandler()

	if rt.registry.Len() == 0 {
		out.Warning("no personas loaded from " + rt.cfg.Personas.Dir)
		return nil
	}

	for team, members := range rt.registry.ByTeam() {
		out.Header(team)
		for _, p := range members {
			label := p.ID
			if p.Emblem != "" {
				label = p.Emblem + " " + label
			}
			fmt.Printf("  %-24s %s\n", label, p.Title)
		}
	}
	return nil
}

func showPersona(id string) error {
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}
	out := ui.NewOutputHandler()

	p, ok := rt.registry.Get(id)
	if !ok {
		return fmt.Errorf("unknown persona: %s", id)
	}

	out.PersonaBanner(p)
	fmt.Println("Team:", p.Team)
	fmt.Println("Role:", p.Role)
	if len(p.Expertise.Primary) > 0 {
		fmt.Println("Expertise:", strings.Join(p.Expertise.Primary, ", "))
	}
	if len(p.WhenToUse) > 0 {
		fmt.Println("When to use:")
		for _, w := range p.WhenToUse {
			fmt.Println("  -", w)
		}
	}
	if len(p.Collaboration.NaturalHandoffs) > 0 {
		fmt.Println("Natural handoffs:", strings.Join(p.Collaboration.NaturalHandoffs, ", "))
	}
	if p.Body != "" {
		out.Separator()
		fmt.Println(out.Highlight(p.Body))
	}
	return nil
}
