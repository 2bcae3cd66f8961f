package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sage-agent/sage/internal/config"
	"github.com/sage-agent/sage/internal/history"
	"github.com/sage-agent/sage/internal/logging"
	"github.com/sage-agent/sage/internal/provider"
	"github.com/sage-agent/sage/internal/runner"
	"github.com/sage-agent/sage/internal/sandbox"
	"github.com/sage-agent/sage/internal/workspace"
	"github.com/sage-agent/sage/memory"
	"github.com/sage-agent/sage/tools"
)

// staleArtifactAge is how old a workspace file must be before -cleanup
// removes it.
const staleArtifactAge = 24 * time.Hour

func main() {
	workspaceFlag := flag.String("workspace", "", "workspace root directory (overrides SAGE_WORKSPACE)")
	cleanup := flag.Bool("cleanup", false, "remove workspace artifacts older than 24h before starting")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		fmt.Println("Missing ANTHROPIC_API_KEY; export it before running.")
		os.Exit(1)
	}

	log := logging.New(*verbose)
	cfg := config.Load()
	if *workspaceFlag != "" {
		cfg.WorkspaceRoot = *workspaceFlag
	}

	ws, err := workspace.New(cfg.WorkspaceRoot)
	if err != nil {
		log.Fatal().Err(err).Str("root", cfg.WorkspaceRoot).Msg("workspace setup failed")
	}
	if *cleanup {
		n, err := ws.CleanStale(staleArtifactAge)
		if err != nil {
			log.Warn().Err(err).Msg("artifact cleanup failed")
		} else if n > 0 {
			log.Info().Int("removed", n).Msg("removed stale artifacts")
		}
	}

	exec := sandbox.New(ws, cfg.PythonBin, cfg.SandboxTimeout, cfg.SandboxTimeoutMax, log)
	registry, err := tools.Default(ws, exec)
	if err != nil {
		log.Fatal().Err(err).Msg("tool registration failed")
	}

	client := provider.NewClient()
	model := provider.Model()
	r := runner.New(client, registry, model, cfg.MaxHops, log, os.Stdout)

	// Seed history from the persisted text transcript.
	persistPath := memory.DefaultPath(ws.Root())
	persisted, err := memory.LoadConversation(persistPath)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load persisted conversation")
	}
	conv := history.New()
	conv.Commit(memory.ToParams(persisted)...)

	var custom, embedded int
	for _, def := range registry.Definitions() {
		if def.Embedded {
			embedded++
		} else {
			custom++
		}
	}
	fmt.Printf("sage: model=%s tools=%d custom, %d provider-side, workspace=%s\n", model, custom, embedded, ws.Root())
	fmt.Println("Chat with Claude (Ctrl-C to quit)")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		fmt.Println("\nExiting...")
		cancel()
	}()

	// stdin reader goroutine -> lines into channel
	scanner := bufio.NewScanner(os.Stdin)
	inputCh := make(chan string)
	go func() {
		for scanner.Scan() {
			inputCh <- scanner.Text()
		}
		close(inputCh)
	}()

outer:
	for {
		fmt.Print("\u001b[94mYou\u001b[0m: ")
		var (
			user string
			ok   bool
		)
		select {
		case <-ctx.Done():
			break outer
		case user, ok = <-inputCh:
			if !ok {
				break outer
			}
		}
		if user == "" {
			continue
		}

		err := r.RunTurn(ctx, conv, user)
		switch {
		case err == nil:
			// fallthrough to persistence
		case errors.Is(err, runner.ErrHopLimit):
			fmt.Fprintln(os.Stderr, "turn stopped at the hop limit; results so far were kept")
		case errors.Is(err, context.Canceled):
			break outer
		default:
			var te *runner.TransportError
			if errors.As(err, &te) {
				fmt.Fprintf(os.Stderr, "request failed, nothing was recorded, try again: %v\n", te.Err)
				continue
			}
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		if err := memory.SaveConversation(persistPath, memory.FromParams(conv.Messages())); err != nil {
			log.Warn().Err(err).Msg("failed to save conversation")
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: stdin read error: %v\n", err)
	}
}
