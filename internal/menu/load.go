package menu

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atomicstack/pad-overlay/internal/format/fold"
	"gopkg.in/yaml.v3"
)

var ErrEmptyMenu = errors.New("empty menu definition")

var keyAliases = map[string]string{
	"children":         "submenu",
	"items":            "submenu",
	"closeafteraction": "closemenuafteraction",
}

// Load reads a menu definition file. JSON and YAML are both accepted.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu %s: %w", path, err)
	}
	tree, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("menu %s: %w", path, err)
	}
	tree.Source = path
	return tree, nil
}

// Parse decodes a menu definition. Field names are matched
// case-insensitively.
func Parse(data []byte) (*Tree, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, ErrEmptyMenu
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	fold.Keys(&doc, keyAliases)
	root := &Node{}
	if err := doc.Decode(root); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &Tree{Root: root}, nil
}
