package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tasktree/pkg/types"
)

func board() types.State {
	return types.NewState(
		types.Category{ID: "c1", Name: "Work", Tasks: []types.Task{
			{ID: "t1", Text: "Write report"},
			{ID: "t2", Text: "Review PR"},
		}},
		types.Category{ID: "c2", Name: "Home", Tasks: []types.Task{}},
	)
}

func TestBoardEmpty(t *testing.T) {
	out := Board(types.NewState(), DefaultOptions())
	assert.Contains(t, out, Title)
	assert.Contains(t, out, EmptyHint)
}

func TestBoardListsCategoriesInOrder(t *testing.T) {
	out := Board(board(), DefaultOptions())

	work := strings.Index(out, "1. Work")
	home := strings.Index(out, "2. Home")
	require.NotEqual(t, -1, work)
	require.NotEqual(t, -1, home)
	assert.Less(t, work, home)

	first := strings.Index(out, "1) Write report")
	second := strings.Index(out, "2) Review PR")
	require.NotEqual(t, -1, first)
	assert.Less(t, first, second)

	assert.Contains(t, out, "no tasks")
	assert.NotContains(t, out, "c1")
	assert.NotContains(t, out, EmptyHint)
}

func TestBoardShowIDs(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowIDs = true
	out := Board(board(), opts)

	assert.Contains(t, out, "(c1)")
	assert.Contains(t, out, "[t2]")
}

func TestCardMarksActiveTask(t *testing.T) {
	opts := Options{ActiveCategory: 0, ActiveTask: 1, Footer: "add: _"}
	out := Card(0, board().Categories[0], opts)

	assert.Contains(t, out, "> ")
	assert.Contains(t, out, "add: _")

	lines := strings.Split(out, "\n")
	var marked string
	for _, l := range lines {
		if strings.Contains(l, "> ") {
			marked = l
		}
	}
	assert.Contains(t, marked, "Review PR")

	inactive := Card(1, board().Categories[1], opts)
	assert.NotContains(t, inactive, "add: _")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, board()))

	assert.JSONEq(t, `{"categories":[
		{"id":"c1","name":"Work","tasks":[{"id":"t1","text":"Write report"},{"id":"t2","text":"Review PR"}]},
		{"id":"c2","name":"Home","tasks":[]}
	]}`, buf.String())
}
