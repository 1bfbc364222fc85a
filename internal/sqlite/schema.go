package sqlite

// Schema DDL. Ordinals hold display order; task IDs are unique only within
// their category.
const (
	createCategories = `CREATE TABLE categories (
    category_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    ordinal INTEGER NOT NULL
);`

	createTasks = `CREATE TABLE tasks (
    category_id TEXT NOT NULL,
    task_id TEXT NOT NULL,
    text TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    PRIMARY KEY (category_id, task_id),
    FOREIGN KEY (category_id) REFERENCES categories(category_id) ON DELETE CASCADE
);`

	idxCategoriesOrdinal = `CREATE INDEX idx_categories_ordinal ON categories(ordinal);`
	idxTasksOrdinal      = `CREATE INDEX idx_tasks_ordinal ON tasks(category_id, ordinal);`
)

// schemaDDL lists all schema statements in dependency order.
var schemaDDL = []string{
	createCategories,
	createTasks,
	idxCategoriesOrdinal,
	idxTasksOrdinal,
}
