// Package main provides the CLI entry point for constgen.
//
// constgen embeds text files in C/C++ programs. Every input file becomes a
// string constant: declared in <output_base>.h and defined, with its content
// escaped, in <output_base>.cpp. It is meant to run as a build step.
//
// Usage:
//
//	constgen <output_base> <input_file>... [flags]
//	constgen --config constgen.yaml [output_base [input_file...]]
//
// Flags:
//
//	--config <path>       YAML or TOML manifest (base, inputs, settings)
//	--header-ext <ext>    declarations extension (default .h)
//	--source-ext <ext>    definitions extension (default .cpp)
//	--log-level <level>   debug, info, warn, error (default warn)
//	--watch               regenerate whenever an input changes
//	--version             print version and exit
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ternarybob/constgen/internal/config"
	"github.com/ternarybob/constgen/internal/logger"
	"github.com/ternarybob/constgen/internal/watch"
	"github.com/ternarybob/constgen/pkg/constgen"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// options holds the command line flags.
type options struct {
	configPath string
	headerExt  string
	sourceExt  string
	logLevel   string
	watch      bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	logger.Stop()

	switch {
	case err == nil:
		return 0
	case errors.Is(err, constgen.ErrUsage):
		printUsage(stdout, cmd, err)
		return 1
	default:
		fmt.Fprintf(stderr, "constgen: %v\n", err)
		return 1
	}
}

func printUsage(w io.Writer, cmd *cobra.Command, err error) {
	fmt.Fprintf(w, "Invalid usage! %v\n\n", err)
	fmt.Fprint(w, cmd.UsageString())
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "constgen <output_base> <input_file>...",
		Short: "Embed text files as C/C++ string constants",
		Long: `constgen converts text files into a header/source pair.

Each input becomes one constant named after its file name, upper-cased with
'.' replaced by '_':

  constgen gen/consts shaders/basic.vert shaders/basic.frag

writes gen/consts.h with "extern const char* BASIC_VERT;" and friends, and
gen/consts.cpp with the escaped file contents.`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd, opts, args)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", constgen.ErrUsage, err)
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "YAML or TOML manifest providing output base, inputs and settings")
	flags.StringVar(&opts.headerExt, "header-ext", constgen.DefaultHeaderExt, "extension of the declarations artifact")
	flags.StringVar(&opts.sourceExt, "source-ext", constgen.DefaultSourceExt, "extension of the definitions artifact")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.watch, "watch", false, "regenerate whenever an input changes")

	return cmd
}

func generate(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	base, inputs := targets(cfg, args)
	if base == "" || len(inputs) == 0 {
		return constgen.ErrUsage
	}

	log := logger.SetupLogger(cfg)

	emitter, err := constgen.New(
		constgen.WithHeaderExt(cfg.Output.HeaderExt),
		constgen.WithSourceExt(cfg.Output.SourceExt),
		constgen.WithLogger(log),
	)
	if err != nil {
		return err
	}

	emit := func() error {
		constants, err := emitter.Emit(base, inputs)
		if err != nil {
			return err
		}
		header, source := emitter.Artifacts(base)
		log.Info().
			Str("header", header).
			Str("source", source).
			Str("constants", strconv.Itoa(len(constants))).
			Msg("Artifacts written")
		return nil
	}

	if err := emit(); err != nil {
		return err
	}
	if !opts.watch {
		return nil
	}

	w, err := watch.New(inputs, emit, cfg.Debounce(), log)
	if err != nil {
		return err
	}
	log.Info().Strs("inputs", inputs).Msg("Watching inputs, press Ctrl+C to stop")
	return w.Run(cmd.Context())
}

// loadConfig reads the manifest, if any, and applies explicitly set flags
// on top of it.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("header-ext") {
		cfg.Output.HeaderExt = opts.headerExt
	}
	if flags.Changed("source-ext") {
		cfg.Output.SourceExt = opts.sourceExt
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// targets resolves the output base and inputs. The first positional argument
// replaces the manifest's base and any further ones replace its inputs.
func targets(cfg *config.Config, args []string) (string, []string) {
	base, inputs := cfg.Output.Base, cfg.Inputs
	if len(args) > 0 {
		base = args[0]
	}
	if len(args) > 1 {
		inputs = args[1:]
	}
	return base, inputs
}
