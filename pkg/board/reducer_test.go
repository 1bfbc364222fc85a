package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tasktree/pkg/types"
)

// deepCopy returns a State that shares no slices with s.
func deepCopy(s types.State) types.State {
	cats := make([]types.Category, len(s.Categories))
	for i, c := range s.Categories {
		tasks := make([]types.Task, len(c.Tasks))
		copy(tasks, c.Tasks)
		c.Tasks = tasks
		cats[i] = c
	}
	return types.NewState(cats...)
}

type renameCategory struct{ ID, Name string }

func (renameCategory) Kind() string { return "RENAME_CATEGORY" }

func TestReduceScenarios(t *testing.T) {
	ids := Sequence("id")

	// Scenario 1: add a category to an empty state.
	s1 := Reduce(types.NewState(), types.AddCategory{Name: "Work"}, ids)
	require.Equal(t, 1, s1.Len())
	work := s1.Categories[0]
	assert.Equal(t, "Work", work.Name)
	assert.Equal(t, "id-1", work.ID)
	assert.Empty(t, work.Tasks)

	// Scenario 2: add a task to that category.
	s2 := Reduce(s1, types.AddTask{CategoryID: work.ID, Text: "Write report"}, ids)
	got, ok := s2.Category(work.ID)
	require.True(t, ok)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "Write report", got.Tasks[0].Text)
	taskID := got.Tasks[0].ID

	// Scenario 3: delete the task; the category stays.
	s3 := Reduce(s2, types.DeleteTask{CategoryID: work.ID, TaskID: taskID}, ids)
	got, ok = s3.Category(work.ID)
	require.True(t, ok)
	assert.Equal(t, "Work", got.Name)
	assert.Empty(t, got.Tasks)

	// Scenario 4: adding a task to an unknown category changes nothing.
	before := deepCopy(s2)
	s4 := Reduce(s2, types.AddTask{CategoryID: "nope", Text: "lost"}, ids)
	assert.Equal(t, before, s4)
}

func TestReduceUnknownTargetsAreNoOps(t *testing.T) {
	ids := Sequence("id")
	s := Reduce(types.NewState(), types.AddCategory{Name: "Work"}, ids)
	catID := s.Categories[0].ID
	s = Reduce(s, types.AddTask{CategoryID: catID, Text: "a"}, ids)

	tests := []struct {
		name   string
		action types.Action
	}{
		{name: "add task to unknown category", action: types.AddTask{CategoryID: "missing", Text: "x"}},
		{name: "delete task from unknown category", action: types.DeleteTask{CategoryID: "missing", TaskID: "id-2"}},
		{name: "delete unknown task", action: types.DeleteTask{CategoryID: catID, TaskID: "missing"}},
		{name: "unrecognized action", action: renameCategory{ID: catID, Name: "Play"}},
		{name: "nil action", action: nil},
		{name: "nil pointer action", action: (*types.AddTask)(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := deepCopy(s)
			got := Reduce(s, tt.action, ids)
			assert.Equal(t, want, got)
		})
	}
}

func TestReducePreservesCategoryOrder(t *testing.T) {
	names := []string{"n1", "n2", "n3", "n4"}
	s := types.NewState()
	ids := Sequence("c")
	for _, n := range names {
		s = Reduce(s, types.AddCategory{Name: n}, ids)
	}

	got := make([]string, 0, s.Len())
	for _, c := range s.Categories {
		got = append(got, c.Name)
	}
	assert.Equal(t, names, got)
}

func TestReducePreservesTaskOrderOnDelete(t *testing.T) {
	ids := Sequence("id")
	s := Reduce(types.NewState(), types.AddCategory{Name: "Work"}, ids)
	catID := s.Categories[0].ID
	for _, text := range []string{"a", "b", "c", "d"} {
		s = Reduce(s, types.AddTask{CategoryID: catID, Text: text}, ids)
	}

	s = Reduce(s, types.DeleteTask{CategoryID: catID, TaskID: s.Categories[0].Tasks[1].ID}, ids)

	var texts []string
	for _, task := range s.Categories[0].Tasks {
		texts = append(texts, task.Text)
	}
	assert.Equal(t, []string{"a", "c", "d"}, texts)
}

func TestReduceGeneratesUniqueIDs(t *testing.T) {
	ids := Sequence("id")
	s := types.NewState()
	for i := 0; i < 3; i++ {
		s = Reduce(s, types.AddCategory{Name: "cat"}, ids)
	}
	for _, c := range s.Categories {
		for j := 0; j < 3; j++ {
			s = Reduce(s, types.AddTask{CategoryID: c.ID, Text: "task"}, ids)
		}
	}

	seen := map[string]bool{}
	for _, c := range s.Categories {
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
		for _, task := range c.Tasks {
			assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
			seen[task.ID] = true
		}
	}
	assert.Len(t, seen, 12)
}

func TestReduceRejectsRepeatedCategoryID(t *testing.T) {
	fixed := func() string { return "same" }
	s := Reduce(types.NewState(), types.AddCategory{Name: "first"}, fixed)
	s = Reduce(s, types.AddCategory{Name: "second"}, fixed)

	require.Equal(t, 1, s.Len())
	assert.Equal(t, "first", s.Categories[0].Name)
}

func TestReduceIsolatesOtherCategories(t *testing.T) {
	ids := Sequence("id")
	s := types.NewState()
	s = Reduce(s, types.AddCategory{Name: "A"}, ids)
	s = Reduce(s, types.AddCategory{Name: "B"}, ids)
	a, b := s.Categories[0].ID, s.Categories[1].ID
	s = Reduce(s, types.AddTask{CategoryID: b, Text: "b1"}, ids)

	bBefore, _ := deepCopy(s).Category(b)

	s = Reduce(s, types.AddTask{CategoryID: a, Text: "a1"}, ids)
	s = Reduce(s, types.AddTask{CategoryID: a, Text: "a2"}, ids)

	bAfter, ok := s.Category(b)
	require.True(t, ok)
	assert.Equal(t, bBefore, bAfter)

	aAfter, _ := s.Category(a)
	assert.Len(t, aAfter.Tasks, 2)
}

func TestReduceDoesNotModifyInput(t *testing.T) {
	ids := Sequence("id")
	s := Reduce(types.NewState(), types.AddCategory{Name: "Work"}, ids)
	catID := s.Categories[0].ID
	s = Reduce(s, types.AddTask{CategoryID: catID, Text: "one"}, ids)
	s = Reduce(s, types.AddTask{CategoryID: catID, Text: "two"}, ids)

	actions := []types.Action{
		types.AddCategory{Name: "Home"},
		types.AddTask{CategoryID: catID, Text: "three"},
		types.DeleteTask{CategoryID: catID, TaskID: s.Categories[0].Tasks[0].ID},
	}
	for _, action := range actions {
		t.Run(action.Kind(), func(t *testing.T) {
			want := deepCopy(s)
			_ = Reduce(s, action, ids)
			assert.Equal(t, want, s)
		})
	}
}

func TestReduceAcceptsPointerActions(t *testing.T) {
	ids := Sequence("id")
	s := Reduce(types.NewState(), &types.AddCategory{Name: "Work"}, ids)
	require.Equal(t, 1, s.Len())

	s = Reduce(s, &types.AddTask{CategoryID: "id-1", Text: "t"}, ids)
	require.Len(t, s.Categories[0].Tasks, 1)

	s = Reduce(s, &types.DeleteTask{CategoryID: "id-1", TaskID: "id-2"}, ids)
	assert.Empty(t, s.Categories[0].Tasks)
}

func TestReduceNilIDFuncFallsBackToUUID(t *testing.T) {
	s := Reduce(types.NewState(), types.AddCategory{Name: "Work"}, nil)
	require.Equal(t, 1, s.Len())
	id := s.Categories[0].ID
	assert.Len(t, id, 36)

	s = Reduce(s, types.AddTask{CategoryID: id, Text: "Write report"}, nil)
	require.Len(t, s.Categories[0].Tasks, 1)
	assert.NotEqual(t, id, s.Categories[0].Tasks[0].ID)
}
