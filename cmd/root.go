package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/marcus/markselect/internal/app"
	"github.com/marcus/markselect/internal/config"
	"github.com/marcus/markselect/internal/logging"
	"github.com/marcus/markselect/pkg/dropdown"
)

var (
	version string
	baseDir string
)

// errNoTerminal is returned when stdin or stdout is not a terminal.
var errNoTerminal = errors.New("markselect needs an interactive terminal")

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "markselect",
	Short: "Pick a mark for a form entry",
	Long: `markselect - a terminal form with a single-choice mark dropdown.

Tab between the name field and the dropdown, open it with Enter or Space or
a click, and save with Ctrl+S. The saved values are printed on exit.`,
	SilenceUsage: true,
	RunE:         runForm,
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initBaseDir)
	registerFlags(rootCmd.Flags())
}

// registerFlags defines the form flags on fs.
func registerFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file (default .markselect/config.json in the working directory)")
	flags.String("log-file", "", "write logs to this file")
	flags.Bool("debug", false, "log dropdown transitions")
	flags.Bool("no-mouse", false, "disable mouse support")
	flags.Bool("inline", false, "render inline instead of on the alternate screen (disables mouse)")
	flags.Int("width", 0, "fixed dropdown panel width (0 fits the options)")
	flags.StringP("preset", "p", "", "initial mark, e.g. SK")
	flags.Bool("accessible", false, "ask with plain line prompts instead of the full-screen form")
}

func initBaseDir() {
	var err error
	baseDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot determine working directory: %v\n", err)
		os.Exit(1)
	}
}

// getBaseDir returns the base directory for the project
func getBaseDir() string {
	return baseDir
}

func runForm(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = config.Path(getBaseDir())
	}
	fileCfg, err := config.LoadFile(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	appCfg, err := resolveSettings(cmd.Flags(), fileCfg)
	if err != nil {
		return err
	}

	accessible, _ := cmd.Flags().GetBool("accessible")
	if !accessible && (!term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd()))) {
		return errNoTerminal
	}

	logFile := fileCfg.LogFile
	if cmd.Flags().Changed("log-file") {
		logFile, _ = cmd.Flags().GetString("log-file")
	}
	debug := fileCfg.Debug
	if cmd.Flags().Changed("debug") {
		debug, _ = cmd.Flags().GetBool("debug")
	}
	logger, closer := logging.New(logging.Options{File: logFile, Debug: debug})
	defer closer.Close()
	appCfg.Logger = logger

	logger.Info("markselect: start", "version", version, "mouse", appCfg.Mouse, "alt_screen", appCfg.AltScreen)

	var res app.Result
	if accessible {
		res, err = app.RunAccessible(cmd.Context(), appCfg, cmd.InOrStdin(), cmd.OutOrStdout())
	} else {
		res, err = app.Run(cmd.Context(), appCfg)
	}
	if err != nil {
		logger.Error("markselect: run", "err", err)
		return err
	}
	if !res.Submitted {
		logger.Info("markselect: quit without saving")
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), app.Summary(res.State))
	return nil
}

// resolveSettings layers command-line flags over the config file.
func resolveSettings(flags *pflag.FlagSet, cfg *config.Config) (app.Config, error) {
	out := app.Config{
		Mouse:     cfg.Mouse,
		AltScreen: cfg.AltScreen,
		Width:     cfg.Width,
	}

	if inline, _ := flags.GetBool("inline"); inline {
		out.AltScreen = false
		out.Mouse = false
	}
	if noMouse, _ := flags.GetBool("no-mouse"); noMouse {
		out.Mouse = false
	}
	if flags.Changed("width") {
		w, _ := flags.GetInt("width")
		if w < 0 {
			return app.Config{}, fmt.Errorf("--width must be >= 0, got %d", w)
		}
		out.Width = w
	}

	if preset, _ := flags.GetString("preset"); preset != "" {
		opt, err := dropdown.ParseOption(preset)
		if err != nil {
			return app.Config{}, fmt.Errorf("--preset: %w", err)
		}
		out.Preset = opt.Display()
	}

	merged := config.Config{Mouse: out.Mouse, AltScreen: out.AltScreen, Width: out.Width}
	if err := merged.Validate(); err != nil {
		return app.Config{}, fmt.Errorf("settings: %w", err)
	}

	return out, nil
}
