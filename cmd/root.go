package cmd

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"thoreinstein.com/tai/pkg/bootstrap"
	"thoreinstein.com/tai/pkg/command"
	"thoreinstein.com/tai/pkg/config"
	"thoreinstein.com/tai/pkg/dispatch"
	taierrors "thoreinstein.com/tai/pkg/errors"
	"thoreinstein.com/tai/pkg/netfetch"
	"thoreinstein.com/tai/pkg/procexec"
	"thoreinstein.com/tai/pkg/shell"
)

var cfgFile string
var verbose bool
var appConfig *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tai",
	Short: "tai - a phrase-driven local shell",
	Long: `tai is an interactive shell that understands plain phrases such as
"show file notes.txt", "calculate 2 + 2 * 3" or "resize image a.png to 100x50"
and performs them on the local machine.

Type "help" at the prompt for the list of phrases and "exit" to quit.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Pre-parse global flags so configuration errors surface before the
	// shell starts.
	cfgFile, verbose = bootstrap.PreParseGlobalFlags(os.Args)

	if err := initConfig(); err != nil {
		cobra.CheckErr(err)
	}

	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		_ = initConfig()
	})

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "C", "", "config file (default is $HOME/.config/tai/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.Version = GetVersion()
	rootCmd.SetVersionTemplate("tai {{.Version}}\n")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	var err error
	appConfig, verbose, err = bootstrap.InitConfig(cfgFile, verbose)
	return err
}

// loadConfig returns the loaded configuration, loading it if needed.
func loadConfig() (*config.Config, error) {
	if appConfig != nil {
		return appConfig, nil
	}
	if err := initConfig(); err != nil {
		return nil, err
	}
	return appConfig, nil
}

// resetConfig clears the cached configuration.
// This is primarily used in tests to ensure each test starts with a fresh config.
func resetConfig() {
	appConfig = nil
	bootstrap.Reset()
	viper.Reset()
}

// newLogger returns the process logger: text on stderr at Info, or Debug
// with --verbose.
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newMatcher builds the matcher over the built-in rules and the configured
// aliases.
func newMatcher(cfg *config.Config, logger *slog.Logger) *command.Matcher {
	return command.NewMatcher(bootstrap.LoadAliasRules(cfg, GetVersion(), logger)...)
}

// newDispatcher wires the machine's capabilities into a dispatcher.
func newDispatcher(cfg *config.Config, m *command.Matcher, logger *slog.Logger) *dispatch.Dispatcher {
	profile := procexec.NewProfile(runtime.GOOS, cfg)
	caps := dispatch.SystemCapabilities(profile, logger)

	retry := taierrors.DefaultRetryConfig()
	retry.MaxRetries = cfg.Weather.Retries
	caps.Net = netfetch.New(nil).WithRetry(retry)

	return dispatch.New(caps, dispatch.Options{
		Usages:            m.Usages(),
		Progress:          os.Stdout,
		Logger:            logger,
		WeatherEndpoint:   cfg.Weather.Endpoint,
		PlotPath:          cfg.Plot.Output,
		PlotWidth:         cfg.Plot.Width,
		PlotHeight:        cfg.Plot.Height,
		MaxPasswordLength: cfg.Password.MaxLength,
	})
}

func runShell(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger().With("session", uuid.NewString())
	slog.SetDefault(logger)

	m := newMatcher(cfg, logger)
	d := newDispatcher(cfg, m, logger)

	reader, err := shell.NewLineReader(os.Stdin, os.Stdout, cfg.REPL.Prompt, cfg.REPL.HistoryLimit, m.Phrases())
	if err != nil {
		return err
	}

	return shell.New(m, d, reader, os.Stdout, logger).Run(cmd.Context())
}
