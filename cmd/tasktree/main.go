// Command tasktree edits an ordered list of categories, each owning an
// ordered list of tasks.
package main

import "github.com/mesh-intelligence/tasktree/internal/cli"

func main() {
	cli.Execute()
}
