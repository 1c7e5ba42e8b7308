package menu

import (
	"fmt"
	"strings"

	"github.com/atomicstack/pad-overlay/internal/keys"
	"go.uber.org/multierr"
)

// Compile resolves the key names of every node with r. Unresolved names
// stay in the compiled sequences so they are skipped when pressed; the
// returned error lists all of them and is a warning, not a failure.
func (t *Tree) Compile(r keys.Resolver) error {
	if t == nil || t.Root == nil {
		return ErrEmptyMenu
	}
	var errs error
	t.Walk(func(path []string, n *Node) bool {
		where := strings.Join(path, pathSeparator)
		if where == "" {
			where = "(root)"
		}
		var err error
		n.action, err = compileNames(r, n.actionNames())
		errs = appendWarnings(errs, where, err)
		n.exit = nil
		if n.ExitKey != "" {
			n.exit, err = compileNames(r, []string{n.ExitKey})
			errs = appendWarnings(errs, where+" exit", err)
		}
		return true
	})
	return errs
}

func compileNames(r keys.Resolver, names []string) (keys.Sequence, error) {
	if len(names) == 0 {
		return nil, nil
	}
	return keys.Compile(r, names)
}

func appendWarnings(errs error, where string, err error) error {
	for _, e := range multierr.Errors(err) {
		errs = multierr.Append(errs, fmt.Errorf("menu %q: %w", where, e))
	}
	return errs
}
