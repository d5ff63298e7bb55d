// Package main provides the careflow command: a single-shot care
// coordination run. It takes a patient request on the command line, drives
// it through the agent pipeline, and prints the final plan.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"google.golang.org/genai"

	"careflow/internal/audit"
	"careflow/internal/clinic"
	"careflow/internal/config"
	"careflow/internal/orchestrator"
	orchadapter "careflow/internal/orchestrator/adapter"
	"careflow/internal/policy"
	"careflow/internal/provider/gemini"
	provider "careflow/internal/provider/models"
)

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	noteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func main() {
	request := strings.TrimSpace(strings.Join(os.Args[1:], " "))
	if request == "" {
		fmt.Fprintln(os.Stderr, "usage: careflow <patient request>")
		os.Exit(2)
	}

	// Load configuration (from defaults + ~/.config/careflow/config.json)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration.\n")
		cfg = config.DefaultConfig()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, request); err != nil {
		reportFailure(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, request string) error {
	p, err := createProvider(ctx, cfg)
	if err != nil {
		return err
	}

	registry, err := createRegistry(p, cfg)
	if err != nil {
		return err
	}

	log := createAuditLogger(cfg)

	temperature := cfg.Provider.Temperature
	orch := orchestrator.New(p, registry, orchestrator.DefaultRoles(), log, orchestrator.Options{
		MaxSupervisorCalls: cfg.Orchestrator.MaxSupervisorCalls,
		MaxToolRounds:      cfg.Orchestrator.MaxToolRounds,
		MaxTotalSteps:      cfg.Orchestrator.MaxTotalSteps,
		GenerateConfig:     &provider.GenerateConfig{Temperature: &temperature},
	})

	plan, err := orch.Run(ctx, request)
	if err != nil {
		return err
	}

	rendered, renderErr := glamour.Render(plan, "auto")
	if renderErr != nil {
		// Plain text is still a valid plan
		fmt.Println(plan)
		return nil
	}
	fmt.Print(rendered)
	return nil
}

func createProvider(ctx context.Context, cfg *config.Config) (provider.Provider, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return gemini.New(gemini.NewRealGeminiClient(genaiClient), cfg.Provider.Model), nil
}

func createRegistry(p provider.Provider, cfg *config.Config) (*orchadapter.Registry, error) {
	var store policy.Store
	var err error
	if cfg.Policy.DocsDir != "" {
		store, err = policy.NewDirStore(cfg.Policy.DocsDir)
	} else {
		store, err = policy.NewStaticStore(policy.DefaultDocuments())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load policy documents: %w", err)
	}

	evaluator := policy.NewEvaluator(store, policy.NewModelInterpreter(p))

	tools := clinic.Tools(clinic.NewDirectory())
	tools = append(tools, policy.NewCheckTool(evaluator))
	return orchadapter.NewRegistry(tools...)
}

func createAuditLogger(cfg *config.Config) audit.Logger {
	dir := cfg.Audit.LogDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, noteStyle.Render("Warning: audit logging disabled (no home directory)"))
			return audit.NopLogger{}
		}
		dir = filepath.Join(home, ".local", "share", "careflow", "runs")
	}

	sink, err := audit.NewJSONLSink(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", noteStyle.Render(fmt.Sprintf("Warning: audit logging disabled: %v", err)))
		return audit.NopLogger{}
	}
	return sink
}

func reportFailure(err error) {
	if runErr, ok := err.(*orchestrator.RunError); ok {
		fmt.Fprintln(os.Stderr, errStyle.Render(fmt.Sprintf("Run failed: %s", runErr.Kind)))
		if runErr.Err != nil {
			fmt.Fprintln(os.Stderr, noteStyle.Render(runErr.Err.Error()))
		}
		fmt.Fprintln(os.Stderr, noteStyle.Render(fmt.Sprintf("Transcript: %d messages before failure", len(runErr.Transcript))))
		return
	}
	fmt.Fprintln(os.Stderr, errStyle.Render(fmt.Sprintf("Error: %v", err)))
}
