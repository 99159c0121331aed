package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/stepcontest/contest-admin/config"
	"github.com/stepcontest/contest-admin/internal/bootstrap"
	apperrors "github.com/stepcontest/contest-admin/internal/errors"
)

const (
	exitOK           = 0
	exitFailure      = 1
	exitUsage        = 2
	exitUnauthorized = 3
)

type commandFn func(cc *commandContext, args []string) error

type command struct {
	name        string
	usage       string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	App    *bootstrap.App
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	in *bufio.Reader
}

// readLine reads one line of operator input without its line terminator.
func (cc *commandContext) readLine() (string, error) {
	line, err := cc.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// usageError marks a malformed invocation; it maps to exit status 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code) //nolint:forbidigo // CLI must propagate the command outcome to the shell
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		_ = printUsage(stderr)
		return exitUsage
	}

	cmdName := args[0]
	if cmdName == "help" || cmdName == "-h" || cmdName == "--help" {
		if err := printUsage(stdout); err != nil {
			return exitFailure
		}
		return exitOK
	}

	cmd, ok := commands()[cmdName]
	if !ok {
		_ = writef(stderr, "unknown command %q\n\n", cmdName)
		_ = printUsage(stderr)
		return exitUsage
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		_ = writef(stderr, "load config: %v\n", err)
		return exitFailure
	}
	logger := bootstrap.InitLogger(stderr, cfg.Observability.Log)

	app, err := bootstrap.NewApp(ctx, bootstrap.AppDeps{Config: &cfg, Logger: logger})
	if err != nil {
		logger.ErrorContext(ctx, "initialise console", "error", err)
		_ = writef(stderr, "error: %v\n", err)
		return exitFailure
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Warn("close console", "error", closeErr)
		}
	}()

	cc := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		App:    app,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		in:     bufio.NewReader(stdin),
	}
	runErr := cmd.run(cc, args[1:])
	if runErr != nil {
		logger.DebugContext(ctx, "command failed", "command", cmdName, "error", runErr)
	}
	return reportError(stderr, runErr)
}

// reportError prints err for the operator and returns the matching exit status.
func reportError(w io.Writer, err error) int {
	var usageErr *usageError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, pflag.ErrHelp):
		return exitOK
	case errors.As(err, &usageErr):
		_ = writef(w, "usage: %s\n", usageErr.msg)
		return exitUsage
	case apperrors.IsUnauthorized(err):
		_ = writeln(w, "Unauthorized: the session has ended. Sign in again with `login`.")
		return exitUnauthorized
	default:
		_ = writef(w, "error: %v\n", err)
		return exitFailure
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			usage:       "login [--username NAME] [--password-file PATH]",
			description: "Sign in and persist the session token",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			usage:       "logout",
			description: "Sign out and forget the session token",
			run:         runLogout,
		},
		"status": {
			name:        "status",
			usage:       "status",
			description: "Show the session state and token details",
			run:         runStatus,
		},
		"contests": {
			name:        "contests",
			usage:       "contests list|get|create|update|delete",
			description: "Manage contests",
			run:         runContests,
		},
		"prize-rules": {
			name:        "prize-rules",
			usage:       "prize-rules list|get|create|update|delete",
			description: "Manage rank-range prize rules of a contest",
			run:         runPrizeRules,
		},
		"claims": {
			name:        "claims",
			usage:       "claims list|status|assign",
			description: "Review prize claims",
			run:         runClaims,
		},
		"users": {
			name:        "users",
			usage:       "users get|update",
			description: "Inspect and adjust participant accounts",
			run:         runUsers,
		},
		"ranking": {
			name:        "ranking",
			usage:       "ranking CONTEST_ID [--top N] [--tail N]",
			description: "Show the leaderboard of a contest",
			run:         runRanking,
		},
		"regions": {
			name:        "regions",
			usage:       "regions [--level CITY|PROVINCE|DISTRICT]",
			description: "List administrative regions",
			run:         runRegions,
		},
		"agents": {
			name:        "agents",
			usage:       "agents list|get|create|update|delete",
			description: "Manage service agents",
			run:         runAgents,
		},
		"config": {
			name:        "config",
			usage:       "config get|set",
			description: "Read or update system configuration",
			run:         runSystemConfig,
		},
		"overview": {
			name:        "overview",
			usage:       "overview",
			description: "Summarise contests, active agents and pending claims",
			run:         runOverview,
		},
		"shell": {
			name:        "shell",
			usage:       "shell",
			description: "Interactive console; input keeps the session alive",
			run:         runShell,
		},
	}
}

func sortedCommands() []command {
	cmds := commands()
	out := make([]command, 0, len(cmds))
	for _, c := range cmds {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: contest-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range sortedCommands() {
		if err := writef(w, "  %-14s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return writef(w, "\nList and show commands accept -o table|json|yaml and --query JMESPATH.\n")
}
