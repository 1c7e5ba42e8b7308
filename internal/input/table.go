package input

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/atomicstack/pad-overlay/internal/format/fold"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidMapping = errors.New("invalid mapping")
	ErrUnknownAction  = errors.New("unknown action")
	ErrEmptyConfig    = errors.New("empty mapping configuration")
)

// povTargets holds hat switch angles in hundredths of a degree.
var povTargets = map[string]int{
	"up":    0,
	"right": 9000,
	"down":  18000,
	"left":  27000,
}

// Config is the on-disk mapping file.
type Config struct {
	JoystickGUID   string            `yaml:"joystickguid"`
	ButtonMappings map[string]string `yaml:"buttonmappings"`
}

// Binding ties a logical action to a device control and the value that
// triggers it. Target is unused for buttons.
type Binding struct {
	Action Action
	Offset Offset
	Target int
	Spec   string
}

// Table is a validated mapping table.
type Table struct {
	DeviceGUID string
	Bindings   []Binding
}

// LoadConfig reads and decodes a mapping file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read mapping %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes JSON or YAML mapping content. Keys are matched
// case-insensitively.
func ParseConfig(data []byte) (Config, error) {
	if strings.TrimSpace(string(data)) == "" {
		return Config{}, ErrEmptyConfig
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("decode mapping: %w", err)
	}
	fold.Keys(&doc, map[string]string{"guid": "joystickguid", "mappings": "buttonmappings"})
	var cfg Config
	if err := doc.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode mapping: %w", err)
	}
	return cfg, nil
}

// NewTable validates every mapping in cfg. Any unknown action or malformed
// spec rejects the whole table.
func NewTable(cfg Config) (*Table, error) {
	t := &Table{DeviceGUID: strings.TrimSpace(cfg.JoystickGUID)}
	for name, spec := range cfg.ButtonMappings {
		action, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		offset, target, err := ParseSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("mapping %s: %w", action, err)
		}
		t.Bindings = append(t.Bindings, Binding{Action: action, Offset: offset, Target: target, Spec: spec})
	}
	sort.SliceStable(t.Bindings, func(i, j int) bool {
		return t.Bindings[i].Action < t.Bindings[j].Action
	})
	return t, nil
}

// ParseSpec parses "Button<N>" or "POV<N>_<Direction>".
func ParseSpec(spec string) (Offset, int, error) {
	s := strings.TrimSpace(spec)
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "button"):
		n, err := parseIndex(s[len("button"):])
		if err != nil {
			return Offset{}, 0, fmt.Errorf("%w: %q: %v", ErrInvalidMapping, spec, err)
		}
		return Button(n), 0, nil
	case strings.HasPrefix(lower, "pov"):
		idx, dir, ok := strings.Cut(s[len("pov"):], "_")
		if !ok {
			return Offset{}, 0, fmt.Errorf("%w: %q: missing direction", ErrInvalidMapping, spec)
		}
		n, err := parseIndex(idx)
		if err != nil {
			return Offset{}, 0, fmt.Errorf("%w: %q: %v", ErrInvalidMapping, spec, err)
		}
		target, ok := povTargets[strings.ToLower(dir)]
		if !ok {
			return Offset{}, 0, fmt.Errorf("%w: %q: unknown direction %q", ErrInvalidMapping, spec, dir)
		}
		return POV(n), target, nil
	}
	return Offset{}, 0, fmt.Errorf("%w: %q", ErrInvalidMapping, spec)
}

func parseIndex(s string) (int, error) {
	if s == "" {
		return 0, errors.New("missing index")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative index %d", n)
	}
	return n, nil
}
