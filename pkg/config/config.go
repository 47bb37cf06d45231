package config

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Config represents the application configuration.
// Empty program names mean "use the platform default".
type Config struct {
	Shell        ShellConfig        `mapstructure:"shell"`
	Audio        AudioConfig        `mapstructure:"audio"`
	Speech       SpeechConfig       `mapstructure:"speech"`
	Interpreters InterpretersConfig `mapstructure:"interpreters"`
	Weather      WeatherConfig      `mapstructure:"weather"`
	Plot         PlotConfig         `mapstructure:"plot"`
	Password     PasswordConfig     `mapstructure:"password"`
	Aliases      AliasesConfig      `mapstructure:"aliases"`
	REPL         REPLConfig         `mapstructure:"repl"`
}

// ShellConfig selects the program used for run, schedule and aliases.
type ShellConfig struct {
	Program string   `mapstructure:"program"` // e.g. "sh", "cmd"
	Args    []string `mapstructure:"args"`    // arguments placed before the command, e.g. ["-c"]
}

// AudioConfig holds audio playback and conversion programs
type AudioConfig struct {
	Player    string `mapstructure:"player"`    // default: afplay on darwin, aplay on linux
	Converter string `mapstructure:"converter"` // default: ffmpeg
}

// SpeechConfig holds the text-to-speech program
type SpeechConfig struct {
	Engine string `mapstructure:"engine"` // default: say on darwin, espeak on linux
}

// InterpretersConfig holds the programs used by "run code"
type InterpretersConfig struct {
	Python     string `mapstructure:"python"`
	JavaScript string `mapstructure:"javascript"`
	Bash       string `mapstructure:"bash"`
}

// WeatherConfig holds the weather service endpoint
type WeatherConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Retries  int    `mapstructure:"retries"` // extra attempts on 5xx, 429 or transport errors
}

// PlotConfig holds sine plot output settings
type PlotConfig struct {
	Output string `mapstructure:"output"`
	Width  int    `mapstructure:"width"`  // pixels
	Height int    `mapstructure:"height"` // pixels
}

// PasswordConfig bounds generated password length
type PasswordConfig struct {
	MaxLength int `mapstructure:"max_length"`
}

// AliasesConfig controls loading of user alias packs
type AliasesConfig struct {
	Enabled    bool     `mapstructure:"enabled"`
	Dirs       []string `mapstructure:"dirs"`        // directories scanned for *.yaml packs
	ProjectDir string   `mapstructure:"project_dir"` // relative to the starting directory
}

// REPLConfig holds interactive prompt settings
type REPLConfig struct {
	Prompt       string `mapstructure:"prompt"`
	HistoryLimit int    `mapstructure:"history_limit"`
}

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	config := &Config{}

	setDefaults()

	if err := viper.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := expandPaths(config); err != nil {
		return nil, errors.Wrap(err, "failed to expand paths")
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return config, nil
}

// Validate validates the configuration and returns any validation errors.
func (c *Config) Validate() error {
	if err := ValidateEndpoint(c.Weather.Endpoint); err != nil {
		return errors.Wrap(err, "weather.endpoint")
	}
	if c.Weather.Retries < 0 {
		return errors.Newf("weather.retries: must not be negative, got %d", c.Weather.Retries)
	}
	if c.Plot.Output == "" {
		return errors.New("plot.output: must not be empty")
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		return errors.Newf("plot: width and height must be positive, got %dx%d", c.Plot.Width, c.Plot.Height)
	}
	if c.Password.MaxLength <= 0 {
		return errors.Newf("password.max_length: must be positive, got %d", c.Password.MaxLength)
	}
	if c.REPL.HistoryLimit < 0 {
		return errors.Newf("repl.history_limit: must not be negative, got %d", c.REPL.HistoryLimit)
	}
	return nil
}

// ValidateEndpoint checks that endpoint is an absolute http or https URL.
func ValidateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return errors.Wrapf(err, "invalid URL %q", endpoint)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Newf("invalid URL %q: scheme must be http or https", endpoint)
	}
	if u.Host == "" {
		return errors.Newf("invalid URL %q: missing host", endpoint)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fall back to current directory if home dir can't be determined
		homeDir = "."
	}

	// Platform programs (empty means platform default)
	viper.SetDefault("shell.program", "")
	viper.SetDefault("shell.args", []string{})
	viper.SetDefault("audio.player", "")
	viper.SetDefault("audio.converter", "ffmpeg")
	viper.SetDefault("speech.engine", "")

	// Interpreters
	viper.SetDefault("interpreters.python", "python3")
	viper.SetDefault("interpreters.javascript", "node")
	viper.SetDefault("interpreters.bash", "bash")

	viper.SetDefault("weather.endpoint", "https://wttr.in")
	viper.SetDefault("weather.retries", 2)

	viper.SetDefault("plot.output", "sine_wave.png")
	viper.SetDefault("plot.width", 640)
	viper.SetDefault("plot.height", 480)

	viper.SetDefault("password.max_length", 4096)

	// Alias packs
	viper.SetDefault("aliases.enabled", true)
	viper.SetDefault("aliases.dirs", []string{filepath.Join(homeDir, ".config", "tai", "aliases")})
	viper.SetDefault("aliases.project_dir", filepath.Join(".tai", "aliases"))

	viper.SetDefault("repl.prompt", "> ")
	viper.SetDefault("repl.history_limit", 500)
}

// expandPaths expands ~ and environment variables in paths
func expandPaths(config *Config) error {
	var err error

	for i, path := range config.Aliases.Dirs {
		config.Aliases.Dirs[i], err = expandPath(path)
		if err != nil {
			return err
		}
	}

	config.Plot.Output, err = expandPath(config.Plot.Output)
	if err != nil {
		return err
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, path[1:]), nil
}
