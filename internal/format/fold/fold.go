// Package fold normalises mapping keys of decoded YAML/JSON documents so
// configuration files can be matched case-insensitively.
package fold

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Keys lower-cases every mapping key below node in place. Keys listed in
// aliases (already lower-cased) are rewritten to their canonical name.
func Keys(node *yaml.Node, aliases map[string]string) {
	if node == nil {
		return
	}
	switch node.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range node.Content {
			Keys(child, aliases)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			name := strings.ToLower(strings.TrimSpace(key.Value))
			if canonical, ok := aliases[name]; ok {
				name = canonical
			}
			key.Value = name
			Keys(node.Content[i+1], aliases)
		}
	case yaml.AliasNode:
		Keys(node.Alias, aliases)
	}
}
