package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nibzard/claw-todo-go/internal/config"
	"github.com/nibzard/claw-todo-go/internal/export"
	"github.com/nibzard/claw-todo-go/internal/store"
	"github.com/nibzard/claw-todo-go/internal/ui"
)

func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("claw-todo "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// exportCommand writes the collection to stdout or to -o.
func (a *app) exportCommand(args []string) error {
	fs := a.newFlagSet("export")
	format := fs.String("format", string(export.FormatMarkdown), "Export format (markdown, yaml, json)")
	fs.StringVar(format, "f", string(export.FormatMarkdown), "Export format (shorthand)")
	output := fs.String("o", "", "Write to a file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := export.ParseFormat(*format)
	if err != nil {
		return err
	}
	tasks := a.svc.All()

	if *output == "" {
		return export.Write(a.stdout, f, tasks)
	}
	file, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := export.Write(file, f, tasks); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	fmt.Fprintf(a.stdout, "%s %d task(s) to %s\n", a.styles.Success("✓ Exported"), len(tasks), *output)
	return nil
}

// doctorCommand checks the task file and configuration.
func (a *app) doctorCommand(args []string) error {
	fs := a.newFlagSet("doctor")
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	w := a.stdout
	fmt.Fprintln(w, "claw-todo Doctor")
	fmt.Fprintln(w, "================")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintln(w, "Config files:")
	printConfigFile := func(label, path string) {
		if path == "" {
			fmt.Fprintf(w, "  %s: (none)\n", label)
			return
		}
		fmt.Fprintf(w, "  %s: %s\n", label, path)
	}
	printConfigFile("User", a.cws.UserFile)
	printConfigFile("Project", a.cws.ProjectFile)
	printConfigFile(".env", a.cws.EnvFile)
	fmt.Fprintln(w)

	path := a.store.Path()
	fmt.Fprintf(w, "Task file: %s\n", path)
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		fmt.Fprintln(w, "  ⚠️  Not found (created on the first change)")
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Fprintln(w, "  ✅ OK")
		result := a.store.Validate(a.cfg.ValidationOptions())
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "  ⚠️  %s\n", warning)
		}
		if result.Valid {
			fmt.Fprintln(w, "  ✅ Valid")
		} else {
			fmt.Fprintln(w, "  ❌ Validation failed:")
			for _, e := range result.Errors {
				fmt.Fprintf(w, "     - %v\n", e)
			}
			allOK = false
		}
		tasks := a.svc.All()
		fmt.Fprintf(w, "  Tasks: %d\n", len(tasks))
		if *verbose {
			for _, t := range tasks {
				fmt.Fprintf(w, "    - [%s] %s: %s\n", t.Status, t.ID, t.Text)
			}
		}
	}
	fmt.Fprintln(w)

	if a.cfg.SchemaFile != "" {
		fmt.Fprintf(w, "Schema file: %s\n", a.cfg.SchemaFile)
		if _, err := os.Stat(a.cfg.SchemaFile); err != nil {
			fmt.Fprintf(w, "  ⚠️  %v (bundled schema used)\n", err)
		} else {
			fmt.Fprintln(w, "  ✅ OK")
		}
		fmt.Fprintln(w)
	}

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return reported("doctor checks failed")
}

// configCommand prints the effective configuration and where each value
// came from.
func (a *app) configCommand(args []string) error {
	fs := a.newFlagSet("config")
	example := fs.Bool("example", false, "Print an example configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(a.stdout, config.ExampleConfig())
		return nil
	}

	w := a.stdout
	fmt.Fprintln(w, a.styles.Title("Configuration"))
	fmt.Fprintln(w)
	for _, e := range a.cws.Entries() {
		value := e.Value
		if value == "" {
			value = "(unset)"
		}
		fmt.Fprintf(w, "  %-17s %s %s\n", e.Name, value, a.styles.Dim("("+string(e.Source)+")"))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-17s %s\n", "task file", a.store.Path())
	fmt.Fprintf(w, "  %-17s %s\n", "lock file", a.store.LockPath())
	if file := a.cws.GetConfigFile(); file != "" {
		fmt.Fprintf(w, "  %-17s %s\n", "config file", file)
	}
	return nil
}

func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := a.newFlagSet("tui")
	interval := fs.Duration("interval", 0, "Refresh interval")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return ui.RunTUI(ctx, a.svc, a.store.Path(),
		ui.WithInterval(*interval),
		ui.WithColor(a.cfg.Color),
	)
}

// initCommand creates an empty task file at the resolved location unless
// one already exists. Without an explicit or global location the file goes
// in the working directory even when an ancestor already holds one.
func (a *app) initCommand(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}

	target := a.store
	if a.cfg.File == "" && !a.cfg.Global {
		target = store.New(filepath.Join(a.cfg.WorkDir, a.cfg.FileName), a.storeOpts...)
	}
	if target.Exists() {
		fmt.Fprintf(a.stdout, "Task file already exists: %s\n", target.Path())
		return nil
	}
	if err := target.Save(nil); err != nil {
		return fmt.Errorf("creating task file: %w", err)
	}
	fmt.Fprintf(a.stdout, "%s %s\n", a.styles.Success("✓ Created"), target.Path())
	return nil
}
