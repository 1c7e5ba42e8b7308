package menu

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/pad-overlay/internal/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

const sampleJSON = `{
  "Label": "Main",
  "Submenu": [
    {
      "Label": "Comms",
      "ExitKey": "ESC",
      "CloseMenuAfterAction": false,
      "Submenu": [
        {"Label": "Tower", "Key": "T"},
        {"Label": "Wingman", "Keys": ["W", "BOGUS", "Z"], "Key": "Q"}
      ]
    },
    {"Label": "Gear", "Key": "G"},
    {"Label": "Note", "CloseMenuAfterAction": false}
  ]
}`

const sampleYAML = `
label: Main
children:
  - label: Lights
    closeAfterAction: false
    children:
      - label: Landing
        keys: [L, ENTER]
`

func testResolver() *keys.Table {
	return keys.NewTable(map[string]int{"T": 1, "W": 2, "Z": 3, "Q": 4, "G": 5, "ESC": 6, "L": 7, "ENTER": 8})
}

func TestParseOriginalJSON(t *testing.T) {
	tree, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)
	root := tree.Root
	assert.Equal(t, "Main", root.Label)
	assert.Equal(t, []string{"Comms", "Gear", "Note"}, root.Labels())

	comms := root.Children[0]
	assert.True(t, comms.HasChildren())
	assert.False(t, comms.CloseAfterAction)
	assert.Equal(t, "ESC", comms.ExitKey)

	gear := root.Children[1]
	assert.False(t, gear.HasChildren())
	assert.True(t, gear.CloseAfterAction, "CloseAfterAction defaults to true")
	assert.True(t, comms.Children[0].CloseAfterAction)
}

func TestParseYAMLWithAliases(t *testing.T) {
	tree, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)
	lights := tree.Root.Children[0]
	assert.False(t, lights.CloseAfterAction)
	require.Len(t, lights.Children, 1)
	assert.Equal(t, []string{"L", "ENTER"}, lights.Children[0].Keys)
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse([]byte("   "))
	assert.ErrorIs(t, err, ErrEmptyMenu)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "menu.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadSetsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o644))
	tree, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, tree.Source)
}

func TestCompileResolvesActionsAndReportsBadNames(t *testing.T) {
	tree, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)

	warn := tree.Compile(testResolver())
	require.Error(t, warn)
	errs := multierr.Errors(warn)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], keys.ErrUnknownKey)
	assert.Contains(t, errs[0].Error(), "Comms/Wingman")

	comms := tree.Root.Children[0]
	require.Len(t, comms.Exit(), 1)
	assert.Equal(t, 6, comms.Exit()[0].Code)
	assert.Empty(t, comms.Action())

	wingman := comms.Children[1]
	assert.Equal(t, []string{"W", "BOGUS", "Z"}, wingman.Action().Names(), "Keys wins over Key")

	gear := tree.Root.Children[1]
	require.Len(t, gear.Action(), 1)
	assert.Equal(t, 5, gear.Action()[0].Code)

	assert.Empty(t, tree.Root.Children[2].Action())
}

func TestCompileEmptyTree(t *testing.T) {
	var tree *Tree
	assert.ErrorIs(t, tree.Compile(testResolver()), ErrEmptyMenu)
}

func TestFindByLabelPath(t *testing.T) {
	tree, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)

	node, ok := tree.Find("comms / tower")
	require.True(t, ok)
	assert.Equal(t, "Tower", node.Label)

	root, ok := tree.Find("")
	require.True(t, ok)
	assert.Same(t, tree.Root, root)

	_, ok = tree.Find("Comms/Nobody")
	assert.False(t, ok)

	sub, ok := tree.Subtree("Comms")
	require.True(t, ok)
	assert.Equal(t, "Comms", sub.Root.Label)
}

func TestWalkVisitsInDisplayOrder(t *testing.T) {
	tree, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)
	var seen []string
	tree.Walk(func(path []string, n *Node) bool {
		seen = append(seen, n.Label)
		return true
	})
	assert.Equal(t, []string{"Main", "Comms", "Tower", "Wingman", "Gear", "Note"}, seen)
	assert.Equal(t, 5, tree.Count())
}

func TestFindAndSubtree(t *testing.T) {
	tree, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)

	node, ok := tree.Find("comms/WINGMAN")
	require.True(t, ok)
	assert.Equal(t, "Wingman", node.Label)

	root, ok := tree.Find("")
	require.True(t, ok)
	assert.Same(t, tree.Root, root)

	_, ok = tree.Find("Comms/Nowhere")
	assert.False(t, ok)

	sub, ok := tree.Subtree("/Comms/")
	require.True(t, ok)
	assert.Equal(t, "Comms", sub.Root.Label)
	assert.Equal(t, 2, sub.Count())
	assert.Equal(t, 5, tree.Count())
}
