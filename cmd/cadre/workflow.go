package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cadre-sh/cadre/internal/ui"
	"github.com/cadre-sh/cadre/internal/workflow"
)

func newWorkflowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflow",
		Short: "Run guided workflows",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "types",
		Short: "List workflow types and their phases",
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range workflow.Types() {
				phases, _ := workflow.Phases(t)
				names := make([]string, len(phases))
				for i, ph := range phases {
					names[i] = ph.Name
				}
				fmt.Printf("%-20s %s\n", t, strings.Join(names, " → "))
			}
		},
	})

	var personaFlag string
	runCmd := &cobra.Command{
		Use:   "run <type> [context]",
		Short: "Walk through a workflow interactively",
		Long: `Starts a workflow session and walks its phases. At each phase, enter
"advance [notes]" to record results and move on, "status" for progress,
"abandon" to stop, or "quit" to leave the session where it is.
Sessions live for the duration of this command.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(false)
			if err != nil {
				return err
			}
			p, err := rt.defaultPersona(personaFlag)
			if err != nil {
				return err
			}
			return runWorkflow(rt, args[0], p.ID, strings.Join(args[1:], " "))
		},
	}
	runCmd.Flags().StringVarP(&personaFlag, "persona", "p", "", "persona to run the workflow as")
	cmd.AddCommand(runCmd)

	return cmd
}

func runWorkflow(rt *runtime, workflowType, personaID, contextNote string) error {
	out := ui.NewOutputHandler()

	session, err := rt.workflows.Start(workflowType, personaID, contextNote)
	if err != nil {
		return err
	}

	out.Info(fmt.Sprintf("started %s as %s", workflowType, personaID))
	fmt.Println(rt.workflows.PhaseChecklist(session.ID))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		verb, rest, _ := strings.Cut(line, " ")

		switch verb {
		case "advance":
			advanced, ok := rt.workflows.Advance(session.ID, rest)
			if !ok {
				out.Warning("workflow could not advance")
				continue
			}
			if advanced.Status == workflow.StatusCompleted {
				out.Success("workflow completed")
				fmt.Println(rt.workflows.ProgressSummary(session.ID))
				return nil
			}
			fmt.Println(rt.workflows.PhaseChecklist(session.ID))

		case "status":
			fmt.Println(rt.workflows.ProgressSummary(session.ID))

		case "abandon":
			rt.workflows.Abandon(session.ID)
			out.Info("workflow abandoned")
			return nil

		case "quit", "exit", "":
			return nil

		default:
			out.Warning("commands: advance [notes], status, abandon, quit")
		}
	}
}
