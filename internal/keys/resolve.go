// Package keys resolves configured key names into injectable key codes and
// presses them.
package keys

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.uber.org/multierr"
)

var ErrUnknownKey = errors.New("unknown key")

// Key is a resolved key name. Keys that failed resolution are kept with
// Valid unset so the sequence can report and skip them when it runs.
type Key struct {
	Name  string
	Code  int
	Valid bool
}

// Sequence is an ordered list of keys pressed one after another.
type Sequence []Key

// Names returns the configured names of every key in the sequence.
func (s Sequence) Names() []string {
	names := make([]string, len(s))
	for i, k := range s {
		names[i] = k.Name
	}
	return names
}

// Resolver turns key names into keys.
type Resolver interface {
	Resolve(name string) (Key, error)
}

// Table is a Resolver backed by a name to code lookup.
type Table struct {
	codes map[string]int
	names []string
}

// DefaultTable returns the resolver for the host keyboard injector.
func DefaultTable() *Table {
	return NewTable(defaultCodes)
}

// NewTable builds a resolver from canonical upper-case names.
func NewTable(codes map[string]int) *Table {
	t := &Table{codes: make(map[string]int, len(codes))}
	for name, code := range codes {
		upper := strings.ToUpper(name)
		t.codes[upper] = code
		t.names = append(t.names, upper)
	}
	sort.Strings(t.names)
	return t
}

// Resolve looks up name case-insensitively. A leading "VK_" is ignored.
func (t *Table) Resolve(name string) (Key, error) {
	canonical := canonicalName(name)
	if code, ok := t.codes[canonical]; ok {
		return Key{Name: name, Code: code, Valid: true}, nil
	}
	err := fmt.Errorf("%w %q", ErrUnknownKey, name)
	if hint := t.Suggest(name); len(hint) > 0 {
		err = fmt.Errorf("%w (did you mean %s?)", err, strings.Join(hint, ", "))
	}
	return Key{Name: name}, err
}

// Compile resolves every name with t.
func (t *Table) Compile(names []string) (Sequence, error) {
	return Compile(t, names)
}

// Compile resolves every name. The returned sequence always has one entry
// per name; the error combines every name that failed to resolve.
func Compile(r Resolver, names []string) (Sequence, error) {
	seq := make(Sequence, 0, len(names))
	var errs error
	for _, name := range names {
		key, err := r.Resolve(name)
		if err != nil {
			errs = multierr.Append(errs, err)
		}
		seq = append(seq, key)
	}
	return seq, errs
}

// Suggest returns up to three known names resembling name.
func (t *Table) Suggest(name string) []string {
	canonical := canonicalName(name)
	if canonical == "" {
		return nil
	}
	ranks := fuzzy.RankFindFold(canonical, t.names)
	sort.Sort(ranks)
	out := make([]string, 0, 3)
	for _, r := range ranks {
		if len(out) == 3 {
			break
		}
		out = append(out, r.Target)
	}
	return out
}

func canonicalName(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	upper = strings.TrimPrefix(upper, "VK_")
	if alias, ok := aliases[upper]; ok {
		return alias
	}
	return upper
}
