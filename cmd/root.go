// Package cmd implements the CLI command structure for claw-todo.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/claw-todo-go/internal/config"
	"github.com/nibzard/claw-todo-go/internal/logging"
	"github.com/nibzard/claw-todo-go/internal/store"
	"github.com/nibzard/claw-todo-go/internal/tasks"
	"github.com/nibzard/claw-todo-go/internal/tododir"
	"github.com/nibzard/claw-todo-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// errReported marks failures whose message was already printed.
var errReported = errors.New("reported")

// IsReported reports whether err was already shown to the user, so the
// entrypoint only needs to set the exit status.
func IsReported(err error) bool {
	return errors.Is(err, errReported)
}

func reported(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errReported, fmt.Sprintf(format, args...))
}

// app carries the per-invocation state shared by command handlers.
type app struct {
	stdout io.Writer
	stderr io.Writer
	cws    *config.ConfigWithSources
	cfg    *config.Config
	logger *log.Logger
	styles *ui.Styles
	store  *store.Store
	svc    *tasks.Service

	storeOpts []store.Option
}

// Run executes the claw-todo CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if wantsHelp(args) {
		printUsage(stdout)
		return nil
	}

	fs := flag.NewFlagSet(tododir.AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(stderr)
	}
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	a, err := newApp(cws, stdout, stderr)
	if err != nil {
		return err
	}

	subcommand := "list"
	remaining := fs.Args()
	if len(remaining) > 0 {
		subcommand = remaining[0]
		remaining = remaining[1:]
	}
	a.logger.Debug("dispatch", "command", subcommand, "store", a.store.Path())

	switch subcommand {
	case "add":
		return a.addCommand(remaining)
	case "list", "ls":
		return a.listCommand(remaining)
	case "find", "search":
		return a.findCommand(remaining)
	case "done":
		return a.doneCommand(remaining)
	case "doing":
		return a.doingCommand(remaining)
	case "block":
		return a.blockCommand(remaining)
	case "priority":
		return a.priorityCommand(remaining)
	case "due":
		return a.dueCommand(remaining)
	case "tag":
		return a.tagCommand(remaining)
	case "edit":
		return a.editCommand(remaining)
	case "rm", "remove":
		return a.rmCommand(remaining)
	case "clear":
		return a.clearCommand(remaining)
	case "stats":
		return a.statsCommand(remaining)
	case "export":
		return a.exportCommand(remaining)
	case "doctor":
		return a.doctorCommand(remaining)
	case "config":
		return a.configCommand(remaining)
	case "tui":
		return a.tuiCommand(ctx, remaining)
	case "init":
		return a.initCommand(remaining)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(stdout, "Unknown command: %s\n", subcommand)
		printUsage(stdout)
		return reported("unknown command: %s", subcommand)
	}
}

// newApp wires the logger, store and service for one invocation.
func newApp(cws *config.ConfigWithSources, stdout, stderr io.Writer) (*app, error) {
	cfg := cws.Config
	logger := logging.NewFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)

	path, err := store.Locate(cfg.LocateOptions())
	if err != nil {
		return nil, fmt.Errorf("locating task file: %w", err)
	}
	storeOpts := []store.Option{store.WithLogger(logger)}
	if home, err := os.UserHomeDir(); err == nil {
		storeOpts = append(storeOpts, store.WithLockDir(tododir.LockDir(home)))
	}
	st := store.New(path, storeOpts...)
	svc := tasks.New(st,
		tasks.WithLogger(logger),
		tasks.WithDefaultPriority(cfg.DefaultPriority),
	)

	return &app{
		stdout: stdout,
		stderr: stderr,
		cws:    cws,
		cfg:    cfg,
		logger: logger,
		styles: ui.NewStyles(cfg.Color),
		store:  st,
		svc:    svc,

		storeOpts: storeOpts,
	}, nil
}

// wantsHelp reports whether -h or --help appears anywhere in args.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help", "-help":
			return true
		}
	}
	return false
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "%s %s\n", tododir.AppName, Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprint(w, strings.TrimLeft(usageText, "\n"))
}

const usageText = `
claw-todo - Task manager for AI agents

USAGE:
  claw-todo [global flags] <command> [args]

COMMANDS:
  add <text>              Add a new task
  list [all|done|active]  List tasks (default: active)
  list overdue            List active tasks past their due date
  list <high|medium|low>  List active tasks with that priority
  list <tag>              List tasks with specific tag
  find <query>            Search task text and tags
  done <id>               Mark task as complete
  doing <id>              Mark task as in progress
  block <id>              Mark task as blocked
  priority <id> <level>   Set priority (high/medium/low)
  due <id> <YYYY-MM-DD>   Set due date
  tag <id> <tags...>      Add tags to task
  edit <id> <text>        Replace task text
  rm <id>                 Remove a task
  clear                   Remove all completed tasks
  export                  Export tasks (-format markdown|yaml|json)
  stats                   Show task statistics
  doctor                  Check the task file and configuration
  config                  Show effective configuration (-example for a template)
  tui                     Open the interactive viewer
  init                    Create an empty task file
  version                 Show version
  help                    Show this help

ADD FLAGS:
  -p, --priority <level>  high, medium or low
  -t, --tag <tag>         Add a tag (repeatable)
  -d, --due <date>        Due date, e.g. 2024-12-31

FLAGS:
  --json                  Output result as JSON (add, list, find)

GLOBAL FLAGS:
  -file <path>            Task file path
  -g, -global             Use the global task file
  -global-file <path>     Global task file path
  -schema <path>          JSON Schema used by doctor
  -no-color               Disable colored output
  -log-level <level>      debug, info, warn, error
  -log-format <format>    text, json, logfmt
  -log-timestamps         Show timestamps in logs
  -log-caller             Show caller location in logs
  -v, -version            Show version

ENVIRONMENT:
  CLAW_TODO_FILE          Custom path for TODO.json
  CLAW_TODO_GLOBAL        Use the global task file
  CLAW_TODO_PRIORITY      Default priority for new tasks
  NO_COLOR                Disable colored output

EXAMPLES:
  claw-todo add "Build the thing"
  claw-todo add Fix login -p high -t auth --due 2024-12-31
  claw-todo priority abc123 high
  claw-todo done abc
  claw-todo list work
  claw-todo export -format yaml
`
