package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"thoreinstein.com/tai/pkg/alias"
	"thoreinstein.com/tai/pkg/command"
	"thoreinstein.com/tai/pkg/config"
)

// LocalConfigName is the per-directory config file merged over the user
// config.
const LocalConfigName = ".tai.toml"

var (
	lastLoadedConfig  string
	lastLoadedVerbose bool
	loadedConfig      *config.Config
)

// PreParseGlobalFlags manually scans os.Args for --config and --verbose flags
// before the main Cobra execution. This is a bootstrap step for configuration.
// It stops scanning as soon as it hits a non-flag argument or the "--" marker.
func PreParseGlobalFlags(args []string) (string, bool) {
	var cfgFile string
	var verbose bool

	for i := 1; i < len(args); i++ {
		arg := args[i]

		// Stop parsing at the standard end-of-options marker
		if arg == "--" {
			break
		}

		// Stop parsing at the first non-flag argument (the subcommand)
		if !strings.HasPrefix(arg, "-") {
			break
		}

		switch {
		case arg == "--config" || arg == "-C":
			if i+1 < len(args) {
				cfgFile = args[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--config="):
			cfgFile = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-C="):
			cfgFile = strings.TrimPrefix(arg, "-C=")
		case strings.HasPrefix(arg, "-C") && len(arg) > 2:
			cfgFile = arg[2:]
		case arg == "--verbose" || arg == "-v":
			verbose = true
		}
	}

	return cfgFile, verbose
}

// ConfigDir returns the user configuration directory, ~/.config/tai.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, ".config", "tai"), nil
}

// InitConfig reads in config file and ENV variables if set.
// It returns the loaded config and the actual verbosity state.
func InitConfig(cfgFile string, verbose bool) (*config.Config, bool, error) {
	// Skip if already loaded with same parameters (unless in test)
	if os.Getenv("GO_TEST") != "true" && loadedConfig != nil && cfgFile == lastLoadedConfig && verbose == lastLoadedVerbose {
		return loadedConfig, verbose, nil
	}

	// Reset Viper state to avoid carrying over stale settings from previous loads.
	viper.Reset()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := ConfigDir()
		if err != nil {
			return nil, verbose, err
		}
		viper.AddConfigPath(dir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("TAI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, verbose, errors.Wrap(err, "failed to read config")
		}
	} else if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// Load directory-local config (.tai.toml) if present
	LoadLocalConfig(verbose)

	cfg, err := config.Load()
	if err != nil {
		return nil, verbose, err
	}

	// Update state
	lastLoadedConfig = cfgFile
	lastLoadedVerbose = verbose
	loadedConfig = cfg

	return cfg, verbose, nil
}

// LoadLocalConfig merges .tai.toml from the current directory over the
// settings already loaded.
func LoadLocalConfig(verbose bool) {
	if _, err := os.Stat(LocalConfigName); err != nil {
		return
	}

	localViper := viper.New()
	localViper.SetConfigFile(LocalConfigName)

	if err := localViper.ReadInConfig(); err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Warning: could not read local config %s: %v\n", LocalConfigName, err)
		}
		return
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Using local config: %s\n", LocalConfigName)
	}

	if err := viper.MergeConfigMap(localViper.AllSettings()); err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "Warning: could not merge local config: %v\n", err)
		}
	}
}

// NewAliasScanner returns a scanner over the configured alias directories.
func NewAliasScanner(cfg *config.Config, taiVersion string) *alias.Scanner {
	return alias.NewScanner(cfg.Aliases.Dirs, cfg.Aliases.ProjectDir, taiVersion)
}

// LoadAliasRules scans the configured alias packs and returns their rules,
// ready to be appended after the built-in rules. Problems with individual
// packs are logged and never stop start-up.
func LoadAliasRules(cfg *config.Config, taiVersion string, logger *slog.Logger) []command.Rule {
	if cfg == nil || !cfg.Aliases.Enabled {
		return nil
	}
	return alias.Load(NewAliasScanner(cfg, taiVersion), command.NewMatcher(), logger)
}

// Reset clears the cached configuration state.
func Reset() {
	lastLoadedConfig = ""
	lastLoadedVerbose = false
	loadedConfig = nil
}
