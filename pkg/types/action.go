package types

// Action kinds. Kind values are stable and appear in logs.
const (
	KindAddCategory = "ADD_CATEGORY"
	KindAddTask     = "ADD_TASK"
	KindDeleteTask  = "DELETE_TASK"
)

// Action is a request to advance a State. Implementations other than the
// ones in this package are accepted and treated as no-ops by the reducer.
type Action interface {
	Kind() string
}

// AddCategory appends a new, empty category named Name.
type AddCategory struct {
	Name string
}

// Kind returns KindAddCategory.
func (AddCategory) Kind() string { return KindAddCategory }

// AddTask appends a new task with Text to the category CategoryID.
type AddTask struct {
	CategoryID string
	Text       string
}

// Kind returns KindAddTask.
func (AddTask) Kind() string { return KindAddTask }

// DeleteTask removes task TaskID from category CategoryID.
type DeleteTask struct {
	CategoryID string
	TaskID     string
}

// Kind returns KindDeleteTask.
func (DeleteTask) Kind() string { return KindDeleteTask }
