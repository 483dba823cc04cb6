// Package main provides the semdelta binary entry point.
// semdelta turns attribute changes of repository resources into SPARQL
// Update requests and publishes them over NATS.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/c360studio/semdelta/config"
	"github.com/c360studio/semdelta/export"
	"github.com/c360studio/semdelta/graph"
	"github.com/c360studio/semdelta/storage"

	// Register vocabularies via init()
	_ "github.com/c360studio/semdelta/vocabulary/fedora"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semdelta"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
	baseURI    string
}

func rootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "SPARQL Update generator for repository resources",
		Long: `semdelta turns the changed attributes of repository resources into
SPARQL Update requests.

Each changed attribute deletes every existing value of its predicate and
inserts the current values. Updates can be printed (render) or published
to NATS JetStream (save).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.baseURI, "base-uri", "", "Repository base URI resource identifiers resolve against")

	cmd.AddCommand(renderCmd(opts), saveCmd(opts), dumpCmd(), versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

// newLogger builds a tint handler over w. Colour is used only when w is a
// terminal.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
		w = colorable.NewColorable(f)
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
	}))
}

// setup loads configuration, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, opts *globalOptions) (*config.Config, *slog.Logger, error) {
	bootstrap := newLogger(cmd.ErrOrStderr(), slog.LevelWarn)

	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFromFile(opts.configPath)
	} else {
		cfg, err = config.NewLoader(bootstrap).Load()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.baseURI != "" {
		cfg.Repository.BaseURI = opts.baseURI
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	logger := newLogger(cmd.ErrOrStderr(), level)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func renderCmd(opts *globalOptions) *cobra.Command {
	var (
		schemaPath string
		patterns   []string
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the SPARQL updates for resource files",
		Long: `Render reads resource files matching the given patterns, applies their
attribute changes and prints the SPARQL update each one would publish.
Nothing is sent. With --watch the updates are printed again whenever a
matching file changes.`,
		Example: `  semdelta render -s schemas.yaml -f 'fixtures/**/*.yaml'
  semdelta render -s schemas.yaml --watch 'fixtures/**/*.yaml'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			// Render never touches NATS or durable storage.
			cfg.NATS.URL = ""
			app := NewApp(cfg, logger)
			all := append(patterns, args...)
			if err := runRender(cmd.Context(), cmd.OutOrStdout(), app, schemaPath, all); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchRender(cmd.Context(), cmd.OutOrStdout(), app, schemaPath, all, logger)
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schemas", "s", "", "Class schema file (default from config)")
	cmd.Flags().StringSliceVarP(&patterns, "files", "f", nil, "Resource file patterns (doublestar globs)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Render again when matching files change")
	return cmd
}

// watchRender re-renders every matching file after each batch of changes
// until ctx is cancelled. Render errors are logged, not returned.
func watchRender(ctx context.Context, out io.Writer, app *App, schemaPath string, patterns []string, logger *slog.Logger) error {
	w, err := newFileWatcher(patterns, defaultDebounce, logger)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	logger.Info("Watching resource files", "patterns", patterns)
	w.Run(ctx, func(changed []string) {
		logger.Info("Resource files changed", "files", changed)
		fmt.Fprintln(out)
		if err := runRender(ctx, out, app, schemaPath, patterns); err != nil {
			logger.Error("Render failed", "error", err)
		}
	})
	return nil
}

func runRender(ctx context.Context, out io.Writer, app *App, schemaPath string, patterns []string) error {
	if len(patterns) == 0 {
		return fmt.Errorf("no resource files given")
	}
	reg, err := app.LoadSchemas(schemaPath)
	if err != nil {
		return err
	}
	files, err := expandPatterns(patterns)
	if err != nil {
		return err
	}

	u := app.Updater()
	for i, path := range files {
		f, err := LoadResourceFile(path)
		if err != nil {
			return err
		}
		store := storage.NewMemoryStore()
		if err := f.Seed(ctx, store); err != nil {
			return err
		}
		r, err := f.Resource(ctx, reg, app.Namespace(), store)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		update, err := u.Preview(ctx, r)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "# %s\n%s\n", path, update)
	}
	return nil
}

func saveCmd(opts *globalOptions) *cobra.Command {
	var (
		schemaPath string
		patterns   []string
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Publish the SPARQL updates for resource files",
		Long: `Save applies the attribute changes of each resource file and publishes
the resulting SPARQL update to NATS JetStream. Requires nats.url.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			app := NewApp(cfg, logger)
			if caps := app.Capabilities(); !caps.Publish.Enabled {
				return fmt.Errorf("publishing is disabled: %s", caps.Publish.Reason)
			}
			return runSave(cmd.Context(), cmd.OutOrStdout(), app, schemaPath, append(patterns, args...))
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schemas", "s", "", "Class schema file (default from config)")
	cmd.Flags().StringSliceVarP(&patterns, "files", "f", nil, "Resource file patterns (doublestar globs)")
	return cmd
}

func runSave(ctx context.Context, out io.Writer, app *App, schemaPath string, patterns []string) error {
	if len(patterns) == 0 {
		return fmt.Errorf("no resource files given")
	}
	reg, err := app.LoadSchemas(schemaPath)
	if err != nil {
		return err
	}
	files, err := expandPatterns(patterns)
	if err != nil {
		return err
	}

	if err := app.Start(ctx); err != nil {
		return err
	}
	defer app.Shutdown()

	for _, path := range files {
		f, err := LoadResourceFile(path)
		if err != nil {
			return err
		}
		if err := f.Seed(ctx, app.Store()); err != nil {
			return err
		}
		r, err := f.Resource(ctx, reg, app.Namespace(), app.Store())
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		res, err := app.Updater().Save(ctx, r)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if res.MessageID == "" {
			fmt.Fprintf(out, "%s: unchanged\n", path)
			continue
		}
		fmt.Fprintf(out, "%s: published %s (%d changes)\n", path, res.MessageID, res.Changes)
	}
	return nil
}

func dumpCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "dump FILE",
		Short: "Re-serialise stored N-Triples content",
		Long: `Dump reads N-Triples content leniently, replacing bytes that are not
valid UTF-8, and writes it back out. Use "-" to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			var data []byte
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("read content: %w", err)
			}

			g, err := graph.Parse(data)
			if err != nil {
				return err
			}
			output, err := export.NewExporter().Export(g, f)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), output)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", string(export.FormatNTriples), "Output format (ntriples, turtle, jsonld)")
	return cmd
}
