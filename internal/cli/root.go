// Package cli implements the dye command line.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dyeshell/dye/internal/config"
	"github.com/dyeshell/dye/internal/logging"
)

// Exit codes returned by Execute.
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

const progName = "dye"

var (
	debugFlag   bool
	colorSpec   string
	noColorFlag bool
	forceColor  bool
	jsonOutput  bool

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:     progName,
	Version: "dev",
	Short:   "Activate color output in shell commands using themes and patterns",
	Long: `dye renders a theme and a pattern into shell code that configures
colors for ls, fzf, iTerm, and other tools. Evaluate its output in your
shell, for example: eval "$(dye apply)"`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		appConfig = cfg

		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		if debugFlag {
			level = zerolog.DebugLevel
		}
		logging.Init(level, cmd.ErrOrStderr())
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return &usageError{}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "output debug and status information to stderr")
	rootCmd.PersistentFlags().StringVar(&colorSpec, "color", "", "provide a `colorspec` for help output")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable color in help output, overrides $DYE_COLORS")
	rootCmd.PersistentFlags().BoolVarP(&forceColor, "force-color", "F", false, "force color output even if standard output is not a terminal")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format where supported")
	rootCmd.MarkFlagsMutuallyExclusive("color", "no-color")

	rootCmd.Flags().BoolP("version", "v", false, "show the program version and exit")
	rootCmd.SetVersionTemplate(progName + " {{.Version}}\n")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})
	installHelp(rootCmd)
}

// SetVersion sets the version reported by --version and `dye version`.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetConfig returns the loaded configuration, or the defaults before a
// command has run.
func GetConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

// IsJSONOutput reports whether --json was given.
func IsJSONOutput() bool {
	return jsonOutput
}

// usageError marks errors in how dye was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *usageError) Unwrap() error { return e.err }

// usageArgs wraps a positional argument validator so its failures are
// reported as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return ExitSuccess
	}
	if cmd == nil {
		cmd = rootCmd
	}

	if isUsageError(err) {
		if msg := err.Error(); msg != "" {
			fmt.Fprintf(stderr, "%s: %s\n", progName, msg)
		}
		configureHelpStyles(stderr)
		fmt.Fprint(stderr, cmd.UsageString())
		return ExitUsage
	}

	fmt.Fprintf(stderr, "%s: %v\n", progName, err)
	return ExitError
}

func isUsageError(err error) bool {
	var uerr *usageError
	if errors.As(err, &uerr) {
		return true
	}
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "if any flags in the group")
}
