// Package board advances a task tree. Reduce is the pure transition function;
// Store wraps it in a single serialized dispatch point for view bindings.
package board

import "github.com/mesh-intelligence/tasktree/pkg/types"

// Reduce returns the State that results from applying action to state.
//
// Reduce never modifies state. Every level it touches is copied; untouched
// categories are shared with the input. Actions that target an unknown
// category or task, and action kinds Reduce does not recognize, return state
// unchanged. newID is called once per created entity; a nil newID means
// NewUUID.
func Reduce(state types.State, action types.Action, newID IDFunc) types.State {
	if newID == nil {
		newID = NewUUID
	}
	switch a := action.(type) {
	case types.AddCategory:
		next, _ := state.WithCategory(types.Category{
			ID:    newID(),
			Name:  a.Name,
			Tasks: []types.Task{},
		})
		return next

	case *types.AddCategory:
		if a == nil {
			return state
		}
		return Reduce(state, *a, newID)

	case types.AddTask:
		if _, ok := state.Category(a.CategoryID); !ok {
			return state
		}
		next, _ := state.UpdateCategory(a.CategoryID, func(c types.Category) (types.Category, bool) {
			return c.WithTask(types.Task{ID: newID(), Text: a.Text}), true
		})
		return next

	case *types.AddTask:
		if a == nil {
			return state
		}
		return Reduce(state, *a, newID)

	case types.DeleteTask:
		next, _ := state.UpdateCategory(a.CategoryID, func(c types.Category) (types.Category, bool) {
			return c.WithoutTask(a.TaskID)
		})
		return next

	case *types.DeleteTask:
		if a == nil {
			return state
		}
		return Reduce(state, *a, newID)

	default:
		return state
	}
}
