package board

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/tasktree/pkg/types"
)

// Listener receives the snapshot produced by a dispatch.
type Listener func(types.State)

// Store holds the current State and is the single point through which it
// changes. Dispatch calls are serialized and applied in call order.
type Store struct {
	mu        sync.Mutex
	state     types.State
	newID     IDFunc
	logger    log.FieldLogger
	listeners map[int]Listener
	nextSub   int
	order     []int
}

// Option configures a Store.
type Option func(*Store)

// WithIDFunc sets the identifier source. The default is NewUUID.
func WithIDFunc(fn IDFunc) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithInitialState starts the Store from state instead of an empty State.
func WithInitialState(state types.State) Option {
	return func(s *Store) {
		s.state = state
	}
}

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(logger log.FieldLogger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore returns a Store holding an empty State.
func NewStore(opts ...Option) *Store {
	s := &Store{
		state:     types.NewState(),
		newID:     NewUUID,
		logger:    log.StandardLogger(),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() types.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies action to the current State, notifies listeners, and
// returns the new snapshot.
func (s *Store) Dispatch(action types.Action) types.State {
	s.mu.Lock()
	prev := s.state
	next := Reduce(prev, action, s.newID)
	s.state = next
	listeners := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	entry := s.logger.WithFields(log.Fields{
		"action":     kindOf(action),
		"categories": next.Len(),
		"tasks":      next.TaskCount(),
	})
	if prev.Len() == next.Len() && prev.TaskCount() == next.TaskCount() {
		entry.Debug("dispatch left state unchanged")
	} else {
		entry.Debug("dispatch applied")
	}

	for _, l := range listeners {
		l(next)
	}
	return next
}

// Subscribe registers l to receive every snapshot produced by Dispatch, in
// registration order. The returned function removes the registration.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.listeners[id] = l
	s.order = append(s.order, id)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.listeners[id]; !ok {
			return
		}
		delete(s.listeners, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func kindOf(action types.Action) string {
	switch a := action.(type) {
	case nil:
		return "<nil>"
	case *types.AddCategory:
		if a == nil {
			return "<nil>"
		}
	case *types.AddTask:
		if a == nil {
			return "<nil>"
		}
	case *types.DeleteTask:
		if a == nil {
			return "<nil>"
		}
	}
	return action.Kind()
}
