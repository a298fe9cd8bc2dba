package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/frauddesk/frauddesk-cli/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	App    *bootstrap.Container
}

func main() {
	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if err := printUsage(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	// SIGINT/SIGTERM cancel the command context; an in-flight watch then
	// winds down between queries instead of being cut off mid-request.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx)
	if err != nil {
		renderError(os.Stderr, err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: app.Logger,
		App:    app,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		renderError(os.Stderr, runErr)
		app.Close()
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
	app.Close()
}

func commands() map[string]command {
	return map[string]command{
		"submit": {
			name:        "submit",
			description: "Submit a transaction for fraud analysis",
			run:         runSubmit,
		},
		"status": {
			name:        "status",
			description: "Fetch the current state of an analysis job",
			run:         runStatus,
		},
		"watch": {
			name:        "watch",
			description: "Poll one or more jobs until they settle",
			run:         runWatch,
		},
		"balance": {
			name:        "balance",
			description: "Show the account's credit balance",
			run:         runBalance,
		},
		"topup": {
			name:        "topup",
			description: "Add credits to the account",
			run:         runTopUp,
		},
		"history": {
			name:        "history",
			description: "List past predictions",
			run:         runHistory,
		},
	}
}

func printUsage() error {
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	if err := writef(os.Stdout, "Usage: frauddesk <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, name := range names {
		c := cmds[name]
		if err := writef(os.Stdout, "  %-10s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}
