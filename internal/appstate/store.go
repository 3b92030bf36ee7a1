package appstate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultNotificationDuration applies when a notification does not set one.
const DefaultNotificationDuration = 5000 * time.Millisecond

// Listener receives every new snapshot.
type Listener func(State)

// Scheduler runs f once after d and returns a function that cancels it.
type Scheduler func(d time.Duration, f func()) (stop func() bool)

func afterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// NewNotification is the caller-supplied part of a Notification.
// A nil Duration means DefaultNotificationDuration; zero keeps the
// notification until it is removed explicitly.
type NewNotification struct {
	Type     NotificationType
	Title    string
	Message  string
	Duration *time.Duration
}

type Option func(*Store)

// WithScheduler replaces time.AfterFunc for notification expiry.
func WithScheduler(s Scheduler) Option {
	return func(st *Store) { st.schedule = s }
}

func WithClock(now func() time.Time) Option {
	return func(st *Store) { st.now = now }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(st *Store) { st.log = l }
}

// Store serialises reducers over one State and keeps its persisted subset in sync
// with a Storage key. Safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	state     State
	storage   Storage
	key       string
	lastSaved []byte

	lmu       sync.Mutex
	listeners map[int]Listener
	nextID    int

	timers   map[string]func() bool
	schedule Scheduler
	now      func() time.Time
	log      logrus.FieldLogger
}

// Open creates a Store for key and rehydrates the persisted subset from storage.
// Collections, notifications and loading flags always start empty.
func Open(ctx context.Context, storage Storage, key string, opts ...Option) (*Store, error) {
	s := &Store{
		state:     Initial(),
		storage:   storage,
		key:       key,
		listeners: make(map[int]Listener),
		timers:    make(map[string]func() bool),
		schedule:  afterFunc,
		now:       time.Now,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Persisted returns the durable subset of the current snapshot.
func (s *Store) Persisted() Persisted {
	return s.State().Persisted()
}

// Dispatch applies reducers in order as one atomic change, saves the persisted
// subset if it changed and notifies listeners. A storage failure is returned
// but the in-memory change stands.
func (s *Store) Dispatch(ctx context.Context, reducers ...Reducer) (State, error) {
	s.mu.Lock()
	next := s.state
	for _, r := range reducers {
		next = r(next)
	}
	s.state = next
	s.stopRemovedTimersLocked()
	err := s.saveLocked(ctx)
	s.mu.Unlock()

	s.notify(next)
	return next, err
}

// AddNotification queues n with a fresh id and timestamp and schedules its
// removal. It returns the id.
func (s *Store) AddNotification(ctx context.Context, n NewNotification) (string, error) {
	d := DefaultNotificationDuration
	if n.Duration != nil {
		d = *n.Duration
	}
	note := Notification{
		ID:        uuid.NewString(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Duration:  d,
		Timestamp: s.now(),
	}

	if _, err := s.Dispatch(ctx, appendNotification(note)); err != nil {
		return note.ID, err
	}

	if d > 0 {
		s.mu.Lock()
		if hasNotification(s.state, note.ID) {
			s.timers[note.ID] = s.schedule(d, func() { s.expire(note.ID) })
		}
		s.mu.Unlock()
	}
	return note.ID, nil
}

// Subscribe registers l and returns a function that unregisters it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.lmu.Lock()
	defer s.lmu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.lmu.Lock()
		defer s.lmu.Unlock()
		delete(s.listeners, id)
	}
}

// Rehydrate re-reads the persisted subset, picking up writes made through
// another Store on the same key. Live collections are kept.
func (s *Store) Rehydrate(ctx context.Context) error {
	s.mu.Lock()
	err := s.loadLocked(ctx)
	next := s.state
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.notify(next)
	return nil
}

// Close cancels pending notification expiries.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, stop := range s.timers {
		stop()
		delete(s.timers, id)
	}
}

// expire removes a notification whose timer fired. A timer that was already
// stopped or forgotten does nothing.
func (s *Store) expire(id string) {
	s.mu.Lock()
	_, pending := s.timers[id]
	delete(s.timers, id)
	s.mu.Unlock()
	if !pending {
		return
	}
	if _, err := s.Dispatch(context.Background(), RemoveNotification(id)); err != nil {
		s.log.WithError(err).WithField("notification_id", id).Warn("expire notification")
	}
}

// stopRemovedTimersLocked cancels timers of notifications no longer queued.
func (s *Store) stopRemovedTimersLocked() {
	for id, stop := range s.timers {
		if !hasNotification(s.state, id) {
			stop()
			delete(s.timers, id)
		}
	}
}

func hasNotification(st State, id string) bool {
	for _, n := range st.UI.Notifications {
		if n.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) loadLocked(ctx context.Context) error {
	data, ok, err := s.storage.Load(ctx, s.key)
	if err != nil {
		return fmt.Errorf("load app state: %w", err)
	}
	if ok {
		var p Persisted
		if err := json.Unmarshal(data, &p); err != nil {
			s.log.WithError(err).WithField("key", s.key).Warn("ignoring unreadable app state")
		} else {
			s.state = ApplyPersisted(p)(s.state)
		}
	}
	s.lastSaved, _ = json.Marshal(s.state.Persisted())
	return nil
}

func (s *Store) saveLocked(ctx context.Context) error {
	data, err := json.Marshal(s.state.Persisted())
	if err != nil {
		return fmt.Errorf("encode app state: %w", err)
	}
	if bytes.Equal(data, s.lastSaved) {
		return nil
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		return fmt.Errorf("save app state: %w", err)
	}
	s.lastSaved = data
	return nil
}

func (s *Store) notify(st State) {
	s.lmu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.lmu.Unlock()

	for _, l := range ls {
		l(st)
	}
}
