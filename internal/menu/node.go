package menu

import (
	"github.com/atomicstack/pad-overlay/internal/keys"
	"gopkg.in/yaml.v3"
)

// Node is a menu entry. Children are shown and navigated in order; a node
// may carry both children and a key action.
type Node struct {
	Label            string   `yaml:"label"`
	Key              string   `yaml:"key"`
	Keys             []string `yaml:"keys"`
	ExitKey          string   `yaml:"exitkey"`
	Children         []*Node  `yaml:"submenu"`
	CloseAfterAction bool     `yaml:"closemenuafteraction"`

	action keys.Sequence
	exit   keys.Sequence
}

// UnmarshalYAML applies the CloseAfterAction default of true.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	type plain Node
	p := plain{CloseAfterAction: true}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*n = Node(p)
	return nil
}

// HasChildren reports whether selecting n opens a submenu.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.Children) > 0
}

// Action returns the compiled key sequence pressed when n is selected.
func (n *Node) Action() keys.Sequence {
	if n == nil {
		return nil
	}
	return n.action
}

// Exit returns the compiled key pressed when backing out of n.
func (n *Node) Exit() keys.Sequence {
	if n == nil {
		return nil
	}
	return n.exit
}

// Labels returns the labels of n's children in display order.
func (n *Node) Labels() []string {
	if n == nil {
		return nil
	}
	labels := make([]string, len(n.Children))
	for i, child := range n.Children {
		labels[i] = child.Label
	}
	return labels
}

// actionNames applies the Keys-over-Key precedence.
func (n *Node) actionNames() []string {
	if len(n.Keys) > 0 {
		return n.Keys
	}
	if n.Key != "" {
		return []string{n.Key}
	}
	return nil
}
