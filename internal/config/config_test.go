package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.MenuFile != "menu.json" || cfg.App.JoystickFile != "joystick.json" {
		t.Fatalf("unexpected file defaults: %#v", cfg.App)
	}
	if cfg.App.PollInterval != 10*time.Millisecond {
		t.Fatalf("expected 10ms poll interval, got %s", cfg.App.PollInterval)
	}
	if cfg.App.KeyDelay != 20*time.Millisecond {
		t.Fatalf("expected 20ms key delay, got %s", cfg.App.KeyDelay)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	env := []string{
		"PAD_OVERLAY_MENU=env-menu.yaml",
		"PAD_OVERLAY_KEY_DELAY=50ms",
		"PAD_OVERLAY_DRY_RUN=true",
		"PAD_OVERLAY_TRACE=1",
	}
	cfg, err := LoadArgs([]string{"-menu", "flag-menu.json", "-root-menu", "Comms/Tower", "-watch"}, env)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.MenuFile != "flag-menu.json" {
		t.Fatalf("flag should win, got %q", cfg.App.MenuFile)
	}
	if cfg.App.KeyDelay != 50*time.Millisecond {
		t.Fatalf("expected env key delay, got %s", cfg.App.KeyDelay)
	}
	if !cfg.App.DryRun || !cfg.App.Watch || !cfg.Logging.Trace {
		t.Fatalf("expected dry-run, watch and trace enabled: %#v", cfg)
	}
	if cfg.App.RootMenu != "Comms/Tower" {
		t.Fatalf("unexpected root menu %q", cfg.App.RootMenu)
	}
	if cfg.Flags["key-delay"] != "50ms" {
		t.Fatalf("expected key-delay flag echo, got %q", cfg.Flags["key-delay"])
	}
}

func TestLoadArgsIgnoresMalformedEnvironment(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"PAD_OVERLAY_POLL_INTERVAL=soon", "PAD_OVERLAY_WIDTH=wide", "junk"})
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.PollInterval != 10*time.Millisecond || cfg.App.Width != 0 {
		t.Fatalf("malformed values should fall back: %#v", cfg.App)
	}
}

func TestLoadArgsRejectsUnknownFlag(t *testing.T) {
	if _, err := LoadArgs([]string{"-bogus"}, nil); err == nil {
		t.Fatalf("expected error for unknown flag")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg, err := LoadArgs([]string{"-width", "-1", "-poll-interval", "0s"}, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	err = Validate(cfg)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(err.Error(), "width") || !strings.Contains(err.Error(), "poll-interval") {
		t.Fatalf("expected both problems, got %v", err)
	}
}

func TestLocatorPrefersExplicitDir(t *testing.T) {
	l := Locator{Dir: "/etc/pad"}
	if got := l.Resolve("menu.json"); got != filepath.Join("/etc/pad", "menu.json") {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestLocatorUsesUserDirWhenPresent(t *testing.T) {
	l := Locator{
		UserDir:    func() (string, error) { return "/home/u/.config", nil },
		Executable: func() (string, error) { return "/opt/pad/pad-overlay", nil },
		Exists:     func(path string) bool { return path == filepath.Join("/home/u/.config", "pad-overlay", "menu.json") },
	}
	if got := l.Resolve("menu.json"); got != filepath.Join("/home/u/.config", "pad-overlay", "menu.json") {
		t.Fatalf("unexpected path %q", got)
	}
	if got := l.Resolve("joystick.json"); got != filepath.Join("/opt/pad", "config", "joystick.json") {
		t.Fatalf("expected executable fallback, got %q", got)
	}
}

func TestLocatorFallsBackWithoutUserDir(t *testing.T) {
	l := Locator{
		UserDir:    func() (string, error) { return "", errors.New("no home") },
		Executable: func() (string, error) { return "/opt/pad/pad-overlay", nil },
		Exists:     func(string) bool { return true },
	}
	if got := l.Resolve("menu.json"); got != filepath.Join("/opt/pad", "config", "menu.json") {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestResolvePathsKeepsAbsoluteNames(t *testing.T) {
	cfg, _ := LoadArgs([]string{"-menu", "/srv/menu.yaml"}, nil)
	ResolvePaths(&cfg, Locator{Dir: "/etc/pad"})
	if cfg.App.MenuPath != "/srv/menu.yaml" {
		t.Fatalf("unexpected menu path %q", cfg.App.MenuPath)
	}
	if cfg.App.JoystickPath != filepath.Join("/etc/pad", "joystick.json") {
		t.Fatalf("unexpected joystick path %q", cfg.App.JoystickPath)
	}
}
