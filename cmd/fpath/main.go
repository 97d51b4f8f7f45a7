package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"fpath-go/internal/app"
	"fpath-go/internal/config"
	"fpath-go/internal/fpath"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		asJSON, _ := root.PersistentFlags().GetBool("json")
		newPrinter(os.Stderr, asJSON).Error(describeError(err))
		os.Exit(1)
	}
}

// options holds the persistent flags shared by every command.
type options struct {
	configPath string
	style      string
	verbose    bool
	json       bool
}

func (o *options) printer(cmd *cobra.Command) printer {
	return newPrinter(cmd.OutOrStdout(), o.json)
}

// loadConfig reads the config file named by --config or the defaults.
func (o *options) loadConfig() (*config.Config, string, error) {
	path, err := config.ResolvePath(o.configPath)
	if err != nil {
		return nil, "", fmt.Errorf("getting defaults: %w", err)
	}
	cfg, err := config.ReadFromFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("reading config: %w", err)
	}
	if o.style != "" {
		cfg.Path.Style = o.style
	}
	return cfg, path, nil
}

// pathStyle picks the style for the path commands: --style first, then the
// config file if there is one, then the host style.
func (o *options) pathStyle() (fpath.Style, error) {
	if o.style != "" {
		return fpath.StyleByName(o.style)
	}
	if cfg, _, err := o.loadConfig(); err == nil {
		return cfg.Path.ParseStyle()
	}
	return fpath.DefaultStyle(), nil
}

// withApp reads the config, creates an App and closes it after fn returns.
// operation identifies the CLI command being run (e.g. "AddRoot", "Locate").
func (o *options) withApp(operation, parameters string, fn func(*app.App) error) (err error) {
	cfg, _, err := o.loadConfig()
	if err != nil {
		return err
	}
	a, err := app.NewApp(cfg, operation, parameters, o.verbose)
	if err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}
	defer func() {
		if cerr := a.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(a)
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "fpath",
		Short:         "Parse, combine and track cross-platform file paths",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&o.configPath, "config", "", "Config file (default $FPATH_CONFIG_PATH or ~/.config/fpath.toml)")
	root.PersistentFlags().StringVar(&o.style, "style", "", `Path style: "windows", "posix" or "host"`)
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Also write log records to stderr")
	root.PersistentFlags().BoolVar(&o.json, "json", false, "Print results as JSON")

	root.AddCommand(
		newParseCmd(o),
		newCombineCmd(o),
		newRelCmd(o),
		newRelateCmd(o),
		newAncestorsCmd(o),
		newEditCmd(o),
		newConfigCmd(o),
		newDBCmd(o),
		newRootsCmd(o),
		newLocateCmd(o),
	)
	return root
}

func newConfigCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ResolvePath(o.configPath)
			if err != nil {
				return fmt.Errorf("failed to get defaults: %w", err)
			}
			cfg, err := config.Default()
			if err != nil {
				return fmt.Errorf("failed to get defaults: %w", err)
			}
			if o.style != "" {
				cfg.Path.Style = o.style
			}
			if _, err := cfg.Path.ParseStyle(); err != nil {
				return err
			}
			if err := config.Init(path, cfg); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration initialized at %s\n", path)
			fmt.Fprintf(out, "Base Dir: %s\n", cfg.BaseDir)
			fmt.Fprintf(out, "Run `fpath db migrate` to create the catalog.\n")
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "View configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := o.loadConfig()
			if err != nil {
				return err
			}
			if o.json {
				o.printer(cmd).Emit(cfg)
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration from %s:\n\n", path)
			m := &config.Manager{}
			return m.Write(out, cfg)
		},
	}

	cmd.AddCommand(initCmd, listCmd)
	return cmd
}

func newDBCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the catalog database",
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := o.loadConfig()
			if err != nil {
				return err
			}
			st, err := app.MigrateDatabase(cfg)
			if err != nil {
				return fmt.Errorf("migrating catalog: %w", err)
			}
			o.printer(cmd).Emit(newSchemaInfo(st))
			return nil
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := o.loadConfig()
			if err != nil {
				return err
			}
			st, err := app.DatabaseStatus(cfg)
			if err != nil {
				return err
			}
			o.printer(cmd).Emit(newSchemaInfo(st))
			return nil
		},
	}

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the catalog schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := app.DatabaseSchema()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), schema)
			return nil
		},
	}

	backupCmd := &cobra.Command{
		Use:   "backup [DEST]",
		Short: "Write a snapshot of the catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := o.loadConfig()
			if err != nil {
				return err
			}
			dest := fmt.Sprintf("catalog-%s.db", time.Now().UTC().Format("20060102T150405Z"))
			if len(args) > 0 {
				dest = args[0]
			}
			if dest, err = filepath.Abs(dest); err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			if err := app.BackupDatabase(cfg, dest); err != nil {
				return err
			}
			o.printer(cmd).Emit(fmt.Sprintf("Catalog written to %s", dest))
			return nil
		},
	}

	cmd.AddCommand(migrateCmd, statusCmd, schemaCmd, backupCmd)
	return cmd
}

func newRootsCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "root",
		Short: "Manage tracked root directories",
	}

	addCmd := &cobra.Command{
		Use:   "add [PATH]",
		Short: "Track a directory (default: current directory)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) > 0 {
				target = args[0]
			}
			return o.withApp("AddRoot", target, func(a *app.App) error {
				res, err := a.AddRoot(target)
				if err != nil {
					return fmt.Errorf("tracking directory: %w", err)
				}
				o.printer(cmd).Emit(newTrackInfo(res))
				return nil
			})
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove PATH",
		Short: "Stop tracking a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp("RemoveRoot", args[0], func(a *app.App) error {
				r, err := a.RemoveRoot(args[0])
				if err != nil {
					return err
				}
				o.printer(cmd).Emit(fmt.Sprintf("Stopped tracking %s", r.Path))
				return nil
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp("ListRoots", "", func(a *app.App) error {
				roots, err := a.Roots()
				if err != nil {
					return err
				}
				if len(roots) == 0 && !o.json {
					fmt.Fprintln(cmd.OutOrStdout(), "No tracked directories.")
					return nil
				}
				o.printer(cmd).Emit(newRootList(roots, time.Now()))
				return nil
			})
		},
	}

	cmd.AddCommand(addCmd, removeCmd, listCmd)
	return cmd
}

func newLocateCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "locate PATH",
		Short: "Find the tracked directory containing PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp("Locate", args[0], func(a *app.App) error {
				loc, err := a.Locate(args[0])
				if err != nil {
					return err
				}
				o.printer(cmd).Emit(newLocationInfo(loc))
				return nil
			})
		},
	}
}
