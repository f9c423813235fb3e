package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/tccm/internal/infrastructure/config"
	"github.com/GriffinCanCode/tccm/internal/infrastructure/logging"
	"github.com/GriffinCanCode/tccm/internal/service"
	"github.com/GriffinCanCode/tccm/internal/shared/errors"
)

// RunOptions configures one invocation
type RunOptions struct {
	// Args excludes the program name
	Args    []string
	Stdout  io.Writer
	Stderr  io.Writer
	WorkDir string
	Version string
	// Config defaults to the environment
	Config *config.Config
	// Logger defaults to one built from Config
	Logger *logging.Logger
}

// Run executes one tccm command and returns the process exit code
func Run(ctx context.Context, opts RunOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Args == nil {
		// cobra falls back to os.Args on nil
		opts.Args = []string{}
	}

	err := run(ctx, opts)
	if err != nil {
		fmt.Fprintln(opts.Stderr, errors.Format(err))
	}
	return errors.ExitCode(err)
}

func run(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return errors.Wrap(errors.CategoryUsage, err, "")
		}
		cfg = loaded
	}

	logger := opts.Logger
	if logger == nil {
		built, err := logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: cfg.Logging.Development,
			OutputPaths: []string{"stderr"},
		})
		if err != nil {
			return errors.Usage(fmt.Sprintf("invalid TCCM_LOG_LEVEL %q", cfg.Logging.Level))
		}
		logger = built
	}
	defer logger.Sync()

	if opts.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return errors.FileSystem(err, "failed to get working directory")
		}
		opts.WorkDir = wd
	}

	a, err := newApp(opts, cfg, logger)
	if err != nil {
		return err
	}

	root := newRootCommand(a, opts.Version, opts.Args)
	root.SetArgs(opts.Args)
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	err = root.ExecuteContext(ctx)
	if err != nil {
		if _, ok := errors.As(err); !ok {
			// cobra's own argument and flag errors
			err = errors.Wrap(errors.CategoryUsage, err, "")
		}
	}

	if werr := a.metrics.WriteTextfile(cfg.Metrics.File); werr != nil {
		logger.Warn("failed to write metrics", zap.String("path", cfg.Metrics.File), zap.Error(werr))
	}
	return err
}

func newRootCommand(a *app, version string, args []string) *cobra.Command {
	root := &cobra.Command{
		Use:   "tccm",
		Short: "Version, publish and fetch components",
		Long: `tccm stamps a component directory with a version, publishes it to a
component registry and downloads published components.`,
		Example: `  tccm config --set-origin=http://example.com
  tccm config --set-user=alice
  tccm config --set-email=alice@example.com
  cd path/to/component
  tccm version 0.0.1
  tccm publish
  tccm get lazyload-0.0.1`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			_ = cmd.Help()
			return errors.Usagef("unknown command %q", args[0])
		},
	}
	// a flag-shaped first token is an unknown command too
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Help()
		return errors.Usagef("unknown command %q", unknownFlag(cmd, args))
	})
	root.SetVersionTemplate("{{.Version}}\n")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		a.command(service.CommandConfig,
			"config --set-origin=<url> | --set-user=<name> | --set-email=<addr>",
			"Set the registry origin and the author identity",
			a.runConfig),
		a.command(service.CommandVersion,
			"version <x.y.z>",
			"Stamp the current directory with a version",
			a.runVersion),
		a.command(service.CommandPublish,
			"publish",
			"Archive the current directory and upload it",
			a.runPublish),
		a.command(service.CommandGet,
			"get <component>",
			"Download a component into the current directory",
			a.runGet),
	)
	return root
}

// unknownFlag returns the first token the root flag set does not define
func unknownFlag(cmd *cobra.Command, args []string) string {
	flags := cmd.Flags()
	for _, arg := range args {
		if !strings.HasPrefix(arg, "-") || arg == "-" || arg == "--" {
			continue
		}
		name, _, _ := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if strings.HasPrefix(arg, "--") {
			if flags.Lookup(name) == nil {
				return arg
			}
			continue
		}
		if len(name) != 1 || flags.ShorthandLookup(name) == nil {
			return arg
		}
	}
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

type handler func(ctx context.Context, opts Options) error

// command builds a subcommand that receives its tokens unparsed
func (a *app) command(name, use, short string, h handler) *cobra.Command {
	return &cobra.Command{
		Use:                use,
		Short:              short,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := Parse(name, args)
			if opts.Help {
				return cmd.Help()
			}

			a.logger.Command(name).Debug("running command", zap.Strings("args", args))
			if err := h(cmd.Context(), opts); err != nil {
				if _, ok := errors.As(err); !ok {
					return errors.Internal(err, name+" failed")
				}
				return err
			}
			return nil
		},
	}
}

func (a *app) runConfig(ctx context.Context, opts Options) error {
	result, err := a.svc.Configure(ctx, opts.Update())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "+ Configuration saved (%s)\n", result.Path)
	return nil
}

func (a *app) runVersion(ctx context.Context, opts Options) error {
	info, err := a.svc.SetVersion(ctx, a.workDir, opts.Version)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "+ Version updated to %s\n", info.Version)
	return nil
}

func (a *app) runPublish(ctx context.Context, opts Options) error {
	result, err := a.svc.Publish(ctx, a.workDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "+ Published %s\n", result.Name)
	return nil
}

func (a *app) runGet(ctx context.Context, opts Options) error {
	result, err := a.svc.Get(ctx, a.workDir, opts.Component)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "+ Get %s successfully! (%s)\n", result.Name, result.Path)
	return nil
}
