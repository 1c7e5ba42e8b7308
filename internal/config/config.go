package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/pad-overlay/internal/app"
	"github.com/atomicstack/pad-overlay/internal/command"
	"github.com/atomicstack/pad-overlay/internal/device"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	appDirName = "pad-overlay"

	defaultMenuFile     = "menu.json"
	defaultJoystickFile = "joystick.json"

	envConfigDir    = "PAD_OVERLAY_CONFIG_DIR"
	envMenuFile     = "PAD_OVERLAY_MENU"
	envJoystickFile = "PAD_OVERLAY_JOYSTICK"
	envRootMenu     = "PAD_OVERLAY_ROOT_MENU"
	envPollInterval = "PAD_OVERLAY_POLL_INTERVAL"
	envKeyDelay     = "PAD_OVERLAY_KEY_DELAY"
	envDryRun       = "PAD_OVERLAY_DRY_RUN"
	envHeadless     = "PAD_OVERLAY_HEADLESS"
	envWatch        = "PAD_OVERLAY_WATCH"
	envWidth        = "PAD_OVERLAY_WIDTH"
	envHeight       = "PAD_OVERLAY_HEIGHT"
	envShowFooter   = "PAD_OVERLAY_FOOTER"
	envTrace        = "PAD_OVERLAY_TRACE"
	envLogFile      = "PAD_OVERLAY_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("pad-overlay", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configDir := fs.String("config-dir", envOrDefault(env, envConfigDir, ""), "directory holding the menu and joystick files (default: user config dir, then <exe dir>/config)")
	menuFile := fs.String("menu", envOrDefault(env, envMenuFile, defaultMenuFile), "menu definition file (JSON or YAML)")
	joystickFile := fs.String("joystick", envOrDefault(env, envJoystickFile, defaultJoystickFile), "controller mapping file (JSON or YAML)")
	rootMenu := fs.String("root-menu", envOrDefault(env, envRootMenu, ""), "label path of the submenu to use as root, e.g. Comms/Tower")
	pollInterval := fs.Duration("poll-interval", envOrDuration(env, envPollInterval, device.DefaultInterval), "controller polling interval")
	keyDelay := fs.Duration("key-delay", envOrDuration(env, envKeyDelay, command.DefaultDelay), "delay between synthesized key presses")
	dryRun := fs.Bool("dry-run", envOrBool(env, envDryRun, false), "log key presses instead of injecting them")
	headless := fs.Bool("headless", envOrBool(env, envHeadless, false), "run without the terminal renderer")
	listDevices := fs.Bool("list-devices", false, "print attached controllers and exit")
	watch := fs.Bool("watch", envOrBool(env, envWatch, false), "reload the menu file when it changes")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			ConfigDir:    *configDir,
			MenuFile:     *menuFile,
			JoystickFile: *joystickFile,
			RootMenu:     *rootMenu,
			PollInterval: *pollInterval,
			KeyDelay:     *keyDelay,
			DryRun:       *dryRun,
			Headless:     *headless,
			ListDevices:  *listDevices,
			Watch:        *watch,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"config-dir":    *configDir,
			"menu":          *menuFile,
			"joystick":      *joystickFile,
			"root-menu":     *rootMenu,
			"poll-interval": pollInterval.String(),
			"key-delay":     keyDelay.String(),
			"dry-run":       strconv.FormatBool(*dryRun),
			"headless":      strconv.FormatBool(*headless),
			"list-devices":  strconv.FormatBool(*listDevices),
			"watch":         strconv.FormatBool(*watch),
			"width":         strconv.Itoa(*width),
			"height":        strconv.Itoa(*height),
			"footer":        strconv.FormatBool(*footer),
			"trace":         strconv.FormatBool(*trace),
			"logFile":       *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects option values the application cannot run with.
func Validate(cfg Config) error {
	var errs []error
	if cfg.App.Width < 0 {
		errs = append(errs, fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width))
	}
	if cfg.App.Height < 0 {
		errs = append(errs, fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height))
	}
	if cfg.App.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll-interval must be positive (got %s)", cfg.App.PollInterval))
	}
	if cfg.App.KeyDelay < 0 {
		errs = append(errs, fmt.Errorf("key-delay must be >= 0 (got %s)", cfg.App.KeyDelay))
	}
	if strings.TrimSpace(cfg.App.MenuFile) == "" {
		errs = append(errs, errors.New("menu file name must not be empty"))
	}
	if strings.TrimSpace(cfg.App.JoystickFile) == "" {
		errs = append(errs, errors.New("joystick file name must not be empty"))
	}
	return errors.Join(errs...)
}

// Locator resolves configuration file names to paths.
type Locator struct {
	Dir        string
	UserDir    func() (string, error)
	Executable func() (string, error)
	Exists     func(path string) bool
}

// DefaultLocator searches the user configuration directory and then the
// directory of the running executable.
func DefaultLocator(dir string) Locator {
	return Locator{
		Dir:        dir,
		UserDir:    os.UserConfigDir,
		Executable: os.Executable,
		Exists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
	}
}

// Resolve returns the path for name. Absolute names are used as given, an
// explicit directory wins, then <user config>/pad-overlay/<name> when it
// exists, else <executable dir>/config/<name>.
func (l Locator) Resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if l.Dir != "" {
		return filepath.Join(l.Dir, name)
	}
	if l.UserDir != nil {
		if dir, err := l.UserDir(); err == nil && dir != "" {
			candidate := filepath.Join(dir, appDirName, name)
			if l.Exists != nil && l.Exists(candidate) {
				return candidate
			}
		}
	}
	if l.Executable != nil {
		if exe, err := l.Executable(); err == nil {
			return filepath.Join(filepath.Dir(exe), "config", name)
		}
	}
	return filepath.Join("config", name)
}

// ResolvePaths fills in the menu and joystick paths of cfg.
func ResolvePaths(cfg *Config, l Locator) {
	cfg.App.MenuPath = l.Resolve(cfg.App.MenuFile)
	cfg.App.JoystickPath = l.Resolve(cfg.App.JoystickFile)
}
