package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cadre-sh/cadre/internal/annotate"
	"github.com/cadre-sh/cadre/internal/config"
	"github.com/cadre-sh/cadre/internal/handoff"
	"github.com/cadre-sh/cadre/internal/knowledge"
	"github.com/cadre-sh/cadre/internal/llm"
	"github.com/cadre-sh/cadre/internal/logger"
	"github.com/cadre-sh/cadre/internal/orchestrator"
	"github.com/cadre-sh/cadre/internal/persona"
	"github.com/cadre-sh/cadre/internal/prompt"
	"github.com/cadre-sh/cadre/internal/tools"
	"github.com/cadre-sh/cadre/internal/workflow"
)

var (
	configPath string
	logLevel   string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cadre",
		Short: "A panel of domain-expert personas in your terminal",
		Long: `cadre lets you talk to domain-expert personas that answer with the help
of tools on your team's knowledge server, suggest handing you off to a
better-suited specialist, and walk you through guided workflows.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				logger.SetLevelFromString(logLevel)
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newChatCmd(),
		newAskCmd(),
		newPersonasCmd(),
		newWorkflowCmd(),
		newAnnotateCmd(),
		newModelsCmd(),
		newVersionCmd(),
	)
	return root
}

// runtime holds the wired components a command needs
type runtime struct {
	cfg       *config.Config
	registry  *persona.Registry
	assembler *prompt.Assembler
	handoffs  *handoff.Engine
	workflows *workflow.Manager
	toolReg   *tools.Registry
	knowledge *knowledge.Client
	provider  llm.Provider
	orch      *orchestrator.Orchestrator
}

// newRuntime loads config and wires the components. requireAPIKey is false
// for commands that never talk to the model provider.
func newRuntime(requireAPIKey bool) (*runtime, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		Path:          configPath,
		RequireAPIKey: requireAPIKey,
	})
	if err != nil {
		return nil, err
	}
	if logLevel == "" {
		logger.SetLevelFromString(cfg.LogLevel)
	}

	registry := persona.Load(cfg.Personas.Dir)

	rt := &runtime{
		cfg:       cfg,
		registry:  registry,
		assembler: prompt.NewAssembler(cfg.Personas.BootstrapDir),
		handoffs:  handoff.NewEngine(registry),
		workflows: workflow.NewManager(),
		toolReg:   tools.NewRegistry(),
	}

	if cfg.Knowledge.BaseURL != "" {
		rt.knowledge = knowledge.NewClient(&cfg.Knowledge)
		tools.RegisterKnowledgeTools(rt.toolReg, rt.knowledge)
	} else {
		logger.Debug("no knowledge server configured, tool catalog is empty")
	}

	if requireAPIKey {
		base := llm.NewAnthropicProvider(cfg)
		if cfg.RateLimit.EnableRateLimiting {
			rt.provider = llm.NewRateLimitedProvider(base, &cfg.RateLimit)
		} else {
			rt.provider = base
		}
		rt.orch = orchestrator.New(rt.provider, rt.registry, rt.assembler, rt.toolReg, rt.handoffs, cfg)
	}

	return rt, nil
}

// defaultPersona resolves the persona to talk to: the flag value if given,
// otherwise the first loaded persona.
func (rt *runtime) defaultPersona(flagValue string) (*persona.Persona, error) {
	if flagValue != "" {
		p, ok := rt.registry.Get(flagValue)
		if !ok {
			return nil, fmt.Errorf("unknown persona: %s", flagValue)
		}
		return p, nil
	}
	all := rt.registry.All()
	if len(all) == 0 {
		return nil, fmt.Errorf("no personas loaded from %s", rt.cfg.Personas.Dir)
	}
	return all[0], nil
}

// mappingEngine builds the annotation engine: defaults, then the local
// override file, then a knowledge-server refresh when configured.
func (rt *runtime) mappingEngine(cmd *cobra.Command) *annotate.Engine {
	mappings := annotate.DefaultMappings()
	if rt.cfg.Annotate.MappingsFile != "" {
		if loaded, err := annotate.LoadMappingsFile(rt.cfg.Annotate.MappingsFile); err != nil {
			logger.Warn("mapping override file unusable: %v", err)
		} else {
			mappings = loaded
		}
	}

	engine := annotate.NewEngine(mappings, rt.cfg.Annotate.MaxPerDocument)
	if rt.knowledge != nil {
		engine.Refresh(cmd.Context(), rt.knowledge)
	}
	return engine
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cadre version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cadre %s\n", version)
		},
	}
}
