package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/atomicstack/pad-overlay/internal/app"
	"github.com/atomicstack/pad-overlay/internal/config"
	"github.com/atomicstack/pad-overlay/internal/device/sdljoy"
	"github.com/atomicstack/pad-overlay/internal/logging"
	"github.com/atomicstack/pad-overlay/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	config.ResolvePaths(&runtimeCfg, config.DefaultLocator(runtimeCfg.App.ConfigDir))
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	if err := app.Run(runtimeCfg.App, controllers()); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func controllers() app.Hardware {
	return app.Hardware{
		Init: sdljoy.Init,
		Quit: sdljoy.Quit,
		List: sdljoy.List,
		Open: sdljoy.OpenGUID,
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg, sdljoy.Version()))
}

// startupTracePayload records what the overlay is about to run with: the
// parsed options, the resolved menu and mapping files, the controller
// backend and the terminal the renderer will draw on.
func startupTracePayload(cfg config.Config, backendVersion string) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"files": map[string]fileDetails{
			"menu":     statFile(cfg.App.MenuPath),
			"joystick": statFile(cfg.App.JoystickPath),
		},
		"backend": backendDetails{Name: backendName, Version: backendVersion},
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cfg.App.Headless || cfg.App.ListDevices {
		payload["renderer"] = "none"
	} else {
		payload["renderer"] = "terminal"
		payload["tty"] = collectTTYDetails()
	}
	return payload
}

const backendName = "sdl2-joystick"

type backendDetails struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

type fileDetails struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	Error  string `json:"error,omitempty"`
}

func statFile(path string) fileDetails {
	entry := fileDetails{Path: path}
	if path == "" {
		return entry
	}
	if _, err := os.Stat(path); err == nil {
		entry.Exists = true
	} else if !errors.Is(err, fs.ErrNotExist) {
		entry.Error = err.Error()
	}
	return entry
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails checks the descriptors the renderer uses: stdin for the
// quit and hide keys, stdout for drawing. The size comes from stdout.
func collectTTYDetails() ttyDetails {
	var details ttyDetails
	for _, probe := range []struct {
		name string
		file *os.File
	}{
		{"stdin", os.Stdin},
		{"stdout", os.Stdout},
	} {
		fd := int(probe.file.Fd())
		entry := ttyProbeResult{Name: probe.name, IsTerminal: term.IsTerminal(fd)}
		if entry.IsTerminal && probe.name == "stdout" {
			if width, height, err := term.GetSize(fd); err == nil {
				details.Detected = &ttyDetected{Width: width, Height: height}
			} else {
				entry.Error = err.Error()
			}
		}
		details.Probes = append(details.Probes, entry)
	}
	return details
}
