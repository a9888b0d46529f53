package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hatvp-dataviz/internal/config"
	"github.com/hatvp-dataviz/internal/debug"
	"github.com/hatvp-dataviz/internal/etl"
)

// app carries the resolved settings shared by every subcommand.
type app struct {
	configFile  string
	debug       bool
	strict      bool
	lenientText bool

	cfg    config.Config
	logger *slog.Logger
}

func main() {
	a := &app{}

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "hatvp",
		Short: "HATVP declaration extraction toolkit",
		Long: `Extracts flat CSV datasets from the HATVP declarations of interests:
personal information, spouse activities, financial participations, external
roles, mandate remuneration and mentions of known organizations and people.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", config.DefaultFile, "configuration file (json5)")
	flags.BoolVar(&a.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&a.strict, "strict", false, "abort on the first file that cannot be extracted")
	flags.BoolVar(&a.lenientText, "lenient-text", false, "drop invalid UTF-8 bytes instead of excluding the file from mention counts")

	// Add subcommands
	rootCmd.AddCommand(a.createPersonalInfoCmd())
	rootCmd.AddCommand(a.createSpouseActivitiesCmd())
	rootCmd.AddCommand(a.createParticipationsCmd())
	rootCmd.AddCommand(a.createExternalRolesCmd())
	rootCmd.AddCommand(a.createMandatesCmd())
	rootCmd.AddCommand(a.createMentionsCmd())
	rootCmd.AddCommand(a.createPipelineCmd())
	rootCmd.AddCommand(a.createSplitCmd())
	rootCmd.AddCommand(a.createHoldingsCmd())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup resolves the configuration then applies the global flags on top.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}

	if a.debug {
		cfg.Debug = true
	}
	if a.strict {
		cfg.OnError = config.OnErrorAbort
	}
	if a.lenientText {
		cfg.LenientText = true
	}

	a.cfg = cfg
	a.logger = debug.NewLogger(os.Stderr, cfg.Debug)
	slog.SetDefault(a.logger)

	a.logger.Debug("configuration resolved", "command", cmd.Name(), "input_dir", cfg.InputDir, "on_error", cfg.OnError, "lenient_text", cfg.LenientText)
	return nil
}

// inputDir returns the positional directory argument or the configured one.
func (a *app) inputDir(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return a.cfg.InputDir
}

func (a *app) pipelineOptions(args []string) (etl.Options, error) {
	policy, err := etl.ParsePolicy(a.cfg.OnError)
	if err != nil {
		return etl.Options{}, err
	}
	return etl.Options{
		InputDir:    a.inputDir(args),
		OnError:     policy,
		LenientText: a.cfg.LenientText,
		Logger:      a.logger,
	}, nil
}
