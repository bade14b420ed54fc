package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Limetric/schemaferry/conventions"
	"github.com/Limetric/schemaferry/generator"
	"github.com/Limetric/schemaferry/processor"
	"github.com/Limetric/schemaferry/runner"
)

var (
	configPath   string
	forcePreview bool
	targetFlag   int64
	stepsFlag    int
	toFlag       int64
)

var rootCmd = &cobra.Command{
	Use:           "schemaferry",
	Short:         "Database schema migration runner",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate [config.toml]",
	Short: "Apply pending migrations",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(args, false, func(ctx context.Context, r *runner.Runner) error {
			return r.MigrateUp(ctx, targetFlag)
		})
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview [config.toml]",
	Short: "Log the SQL pending migrations would run without executing it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(args, true, func(ctx context.Context, r *runner.Runner) error {
			return r.MigrateUp(ctx, targetFlag)
		})
	},
}

var rollbackCmd = &cobra.Command{
	Use:   "rollback [config.toml]",
	Short: "Revert applied migrations",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toSet := cmd.Flags().Changed("to")
		if toSet && cmd.Flags().Changed("steps") {
			return fmt.Errorf("--steps and --to are mutually exclusive")
		}
		return withRunner(args, false, func(ctx context.Context, r *runner.Runner) error {
			if toSet {
				return r.RollbackTo(ctx, toFlag)
			}
			return r.Rollback(ctx, stepsFlag)
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list [config.toml]",
	Short: "List migrations and whether they are applied",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRunner(args, false, func(ctx context.Context, r *runner.Runner) error {
			list, err := r.List(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range list {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Fprintf(out, "%-8s %s\n", state, s.Info)
			}
			return nil
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and supported dialects",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "schemaferry %s\n", versionString())
		fmt.Fprintf(cmd.OutOrStdout(), "dialects: %s\n", strings.Join(generator.Dialects(), ", "))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config file")
	rootCmd.PersistentFlags().BoolVar(&forcePreview, "preview", false, "log SQL without executing it")
	migrateCmd.Flags().Int64Var(&targetFlag, "target", 0, "highest version to apply (0 applies all)")
	previewCmd.Flags().Int64Var(&targetFlag, "target", 0, "highest version to preview (0 previews all)")
	rollbackCmd.Flags().IntVar(&stepsFlag, "steps", 1, "number of migrations to revert")
	rollbackCmd.Flags().Int64Var(&toFlag, "to", 0, "revert every migration newer than this version")
	rootCmd.AddCommand(migrateCmd, previewCmd, rollbackCmd, listCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withRunner loads the config, connects, and hands a ready runner to fn.
func withRunner(args []string, preview bool, fn func(context.Context, *runner.Runner) error) error {
	// Positional arg takes precedence over --config flag
	cfgPath := configPath
	if len(args) > 0 {
		cfgPath = args[0]
	}
	if cfgPath == "" {
		return fmt.Errorf("config file required: schemaferry <command> <config.toml> or --config <config.toml>")
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if preview || forcePreview {
		cfg.Preview = true
	}
	if err := cfg.checkConnection(); err != nil {
		return err
	}

	ctx := context.Background()
	r, closeFn, err := newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, r)
}

func newRunner(ctx context.Context, cfg *Config) (*runner.Runner, func(), error) {
	log.Printf("config: dialect=%s compatibility=%s preview=%t migrations_dir=%s",
		cfg.Dialect, cfg.Compatibility, cfg.Preview, cfg.MigrationsDir)

	gen, err := generator.New(cfg.Dialect, cfg.generatorOptions())
	if err != nil {
		return nil, nil, err
	}

	var conn processor.Conn
	if cfg.connects() {
		log.Printf("connecting to %s...", cfg.Dialect)
		conn, err = processor.Open(ctx, cfg.Dialect, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
	} else {
		log.Printf("no connection; every migration is treated as pending")
	}

	p, err := processor.New(gen, conn, processor.Options{PreviewOnly: cfg.Preview, Timeout: cfg.timeout})
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, nil, err
	}
	closeFn := func() {
		if err := p.Close(); err != nil {
			log.Printf("WARN: close connection: %v", err)
		}
	}

	dir := cfg.resolvePath(cfg.MigrationsDir)
	ms, err := loadScriptMigrations(dir, cfg.Parameters)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	log.Printf("found %d migration(s) in %s", len(ms), dir)

	convOpts := conventions.Options{RootPath: dir}
	if cfg.DefaultSchema != "" {
		convOpts.DefaultSchema = &cfg.DefaultSchema
	}
	r, err := runner.New(p, ms, runner.Options{
		Conventions: conventions.NewSet(convOpts),
		Store:       runner.NewProcessorStore(p, cfg.VersionSchema, cfg.VersionTable),
	})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return r, closeFn, nil
}
