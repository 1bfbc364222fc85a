// Package session binds a line-oriented terminal to a board.Store. Each input
// line is one command; every dispatch re-renders the board.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/tasktree/internal/render"
	"github.com/mesh-intelligence/tasktree/pkg/board"
	"github.com/mesh-intelligence/tasktree/pkg/types"
)

// DefaultPrompt is printed before each command when prompting is enabled.
const DefaultPrompt = "tasktree> "

// ErrNoSnapshotter is returned by save when the session has no backend.
var ErrNoSnapshotter = errors.New("persistence is not configured")

const helpText = `Commands:
  category <name>              add a category (alias: c)
  task <category> <text>       add a task to a category (alias: t)
  delete <category> <task>     delete a task (alias: d)
  show                         print the board (alias: ls)
  json                         print the board as JSON
  save                         save the board to the data directory
  help                         show this help
  quit                         leave the session (alias: exit)
A <category> or <task> is an ID or a 1-based position.
`

// Session reads commands and dispatches them to a Store.
type Session struct {
	store    *board.Store
	out      io.Writer
	snap     types.Snapshotter
	prompt   string
	jsonMode bool
	opts     render.Options
	logger   log.FieldLogger
}

// Option configures a Session.
type Option func(*Session)

// WithSnapshotter enables the save command.
func WithSnapshotter(snap types.Snapshotter) Option {
	return func(s *Session) { s.snap = snap }
}

// WithPrompt sets the prompt; an empty prompt disables it.
func WithPrompt(prompt string) Option {
	return func(s *Session) { s.prompt = prompt }
}

// WithJSON renders every snapshot as JSON instead of cards.
func WithJSON(on bool) Option {
	return func(s *Session) { s.jsonMode = on }
}

// WithRenderOptions sets the card rendering options.
func WithRenderOptions(opts render.Options) Option {
	return func(s *Session) { s.opts = opts }
}

// WithLogger sets the session logger.
func WithLogger(logger log.FieldLogger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a Session writing to out. The board is re-rendered to out
// after every dispatch on store.
func New(store *board.Store, out io.Writer, opts ...Option) *Session {
	s := &Session{
		store:  store,
		out:    out,
		prompt: DefaultPrompt,
		opts:   render.DefaultOptions(),
		logger: log.StandardLogger(),
	}
	s.opts.ShowIDs = true
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes commands read from in until EOF, quit, or ctx is done.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	unsubscribe := s.store.Subscribe(func(st types.State) { s.show(st) })
	defer unsubscribe()

	s.show(s.store.State())

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.prompt != "" {
			fmt.Fprint(s.out, s.prompt)
		}
		if !scanner.Scan() {
			break
		}
		quit, err := s.Exec(scanner.Text())
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// Exec runs one command line. It reports whether the session should end.
// Errors are user-facing and never fatal to the session.
func (s *Session) Exec(line string) (quit bool, err error) {
	cmd, rest := splitWord(strings.TrimSpace(line))
	if cmd == "" {
		return false, nil
	}
	s.logger.WithField("command", cmd).Debug("session command")

	switch strings.ToLower(cmd) {
	case "category", "c":
		s.store.SubmitCategory(rest)
	case "task", "t":
		ref, text := splitWord(rest)
		if text == "" {
			return false, nil
		}
		cat, err := s.resolveCategory(ref)
		if err != nil {
			return false, err
		}
		s.store.SubmitTask(cat.ID, text)
	case "delete", "d":
		catRef, taskRef := splitWord(rest)
		cat, err := s.resolveCategory(catRef)
		if err != nil {
			return false, err
		}
		task, err := resolveTask(cat, strings.TrimSpace(taskRef))
		if err != nil {
			return false, err
		}
		s.store.RemoveTask(cat.ID, task.ID)
	case "show", "ls":
		s.show(s.store.State())
	case "json":
		return false, render.JSON(s.out, s.store.State())
	case "save":
		return false, s.save()
	case "help", "?":
		fmt.Fprint(s.out, helpText)
	case "quit", "exit", "q":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return false, nil
}

func (s *Session) show(st types.State) {
	if s.jsonMode {
		if err := render.JSON(s.out, st); err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
		return
	}
	fmt.Fprint(s.out, render.Board(st, s.opts))
}

func (s *Session) save() error {
	if s.snap == nil {
		return ErrNoSnapshotter
	}
	st := s.store.State()
	if err := s.snap.Save(st); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	fmt.Fprintf(s.out, "saved %d categories, %d tasks\n", st.Len(), st.TaskCount())
	return nil
}

// resolveCategory finds a category by exact ID, then by 1-based position.
func (s *Session) resolveCategory(ref string) (types.Category, error) {
	st := s.store.State()
	if c, ok := st.Category(ref); ok {
		return c, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if c, ok := st.CategoryAt(n - 1); ok {
			return c, nil
		}
	}
	return types.Category{}, fmt.Errorf("no category matches %q", ref)
}

// resolveTask finds a task in c by exact ID, then by 1-based position.
func resolveTask(c types.Category, ref string) (types.Task, error) {
	if t, ok := c.Task(ref); ok {
		return t, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if t, ok := c.TaskAt(n - 1); ok {
			return t, nil
		}
	}
	return types.Task{}, fmt.Errorf("no task matches %q in %s", ref, c.Name)
}

// splitWord returns the first whitespace-delimited word of s and the
// remainder with surrounding whitespace removed.
func splitWord(s string) (word, rest string) {
	s = strings.TrimSpace(s)
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i+1:])
}
