package board

import "github.com/mesh-intelligence/tasktree/pkg/types"

// SubmitCategory dispatches AddCategory when name is non-empty. An empty name
// is dropped without dispatching and SubmitCategory returns false.
func (s *Store) SubmitCategory(name string) bool {
	if name == "" {
		return false
	}
	s.Dispatch(types.AddCategory{Name: name})
	return true
}

// SubmitTask dispatches AddTask when text is non-empty. An empty text is
// dropped without dispatching and SubmitTask returns false. An unknown
// categoryID is still dispatched; the reducer ignores it.
func (s *Store) SubmitTask(categoryID, text string) bool {
	if text == "" {
		return false
	}
	s.Dispatch(types.AddTask{CategoryID: categoryID, Text: text})
	return true
}

// RemoveTask dispatches DeleteTask.
func (s *Store) RemoveTask(categoryID, taskID string) {
	s.Dispatch(types.DeleteTask{CategoryID: categoryID, TaskID: taskID})
}
