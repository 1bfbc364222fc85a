package types

// Task is a leaf unit of work. A task lives inside exactly one Category.
type Task struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Category is a named grouping that owns an ordered list of tasks.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`
}

// Task returns the task with the given ID.
func (c Category) Task(id string) (Task, bool) {
	if i := c.taskPos(id); i >= 0 {
		return c.Tasks[i], true
	}
	return Task{}, false
}

// TaskAt returns the task at the zero-based position pos.
func (c Category) TaskAt(pos int) (Task, bool) {
	if pos < 0 || pos >= len(c.Tasks) {
		return Task{}, false
	}
	return c.Tasks[pos], true
}

// WithTask returns a copy of c with t appended. The receiver's task slice
// is not modified.
func (c Category) WithTask(t Task) Category {
	tasks := make([]Task, len(c.Tasks), len(c.Tasks)+1)
	copy(tasks, c.Tasks)
	c.Tasks = append(tasks, t)
	return c
}

// WithoutTask returns a copy of c with the task matching id removed and the
// remaining tasks in their original order. The second result is false when
// no task matched, in which case c is returned as is.
func (c Category) WithoutTask(id string) (Category, bool) {
	pos := c.taskPos(id)
	if pos < 0 {
		return c, false
	}
	tasks := make([]Task, 0, len(c.Tasks)-1)
	tasks = append(tasks, c.Tasks[:pos]...)
	tasks = append(tasks, c.Tasks[pos+1:]...)
	c.Tasks = tasks
	return c, true
}

func (c Category) taskPos(id string) int {
	for i, t := range c.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
