// Package live keeps a running estimate for a quote form that is being filled in.
// Field edits are pushed to a Session; recalculated estimates are streamed back
// over Server-Sent Events.
package live

import (
	"context"
	"errors"
	"sync"
	"time"

	"photobooth_backend/internal/quotes/domain"
	"photobooth_backend/platform/debounce"
	"photobooth_backend/platform/logger"

	"github.com/google/uuid"
)

// ErrSessionClosed is returned when updating a session that has been closed.
var ErrSessionClosed = errors.New("live quote session closed")

const subscriberBuffer = 16

// Estimator prices a set of form fields.
type Estimator interface {
	Estimate(ctx context.Context, in domain.EstimateInput) domain.Estimate
}

// FieldUpdate holds changed form fields. Nil fields are unchanged.
type FieldUpdate struct {
	ServiceType  *string
	StartTime    *string
	EndTime      *string
	VenueAddress *string
}

// Update is a recalculated estimate tagged with the input generation it priced.
type Update struct {
	Generation uint64
	Input      domain.EstimateInput
	Estimate   domain.Estimate
}

type subscriber struct {
	events chan Update
}

// Session is one open quote form.
type Session struct {
	id        uuid.UUID
	estimator Estimator
	debouncer *debounce.Debouncer
	ctx       context.Context
	cancel    context.CancelFunc
	now       func() time.Time
	log       *logger.Logger

	mu          sync.Mutex
	input       domain.EstimateInput
	generation  uint64
	latest      *Update
	subscribers []*subscriber
	lastSeen    time.Time
	closed      bool
}

func newSession(estimator Estimator, delay time.Duration, now func() time.Time, log *logger.Logger) *Session {
	id := uuid.New()
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), logger.SessionIDKey, id.String()))
	return &Session{
		id:        id,
		estimator: estimator,
		debouncer: debounce.New(delay),
		ctx:       ctx,
		cancel:    cancel,
		now:       now,
		log:       log,
		lastSeen:  now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Input returns the current form fields.
func (s *Session) Input() domain.EstimateInput {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// Latest returns the most recent published estimate, if any.
func (s *Session) Latest() (Update, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest == nil {
		return Update{}, false
	}
	return *s.latest, true
}

// start prices the initial fields right away.
func (s *Session) start(initial domain.EstimateInput) {
	if initial.ServiceType == "" {
		initial.ServiceType = domain.ServiceRent
	}
	s.mu.Lock()
	s.input = initial
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	go s.recalculate(gen, initial)
}

// Apply records changed fields and returns the new input generation.
// A service type change is priced immediately and cancels any pending
// recalculation; time and address edits are debounced.
func (s *Session) Apply(u FieldUpdate) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrSessionClosed
	}
	s.lastSeen = s.now()

	serviceChanged := u.ServiceType != nil && domain.ServiceType(*u.ServiceType) != s.input.ServiceType
	fieldsChanged := false
	if u.ServiceType != nil {
		s.input.ServiceType = domain.ServiceType(*u.ServiceType)
	}
	if u.StartTime != nil && *u.StartTime != s.input.StartTime {
		s.input.StartTime = *u.StartTime
		fieldsChanged = true
	}
	if u.EndTime != nil && *u.EndTime != s.input.EndTime {
		s.input.EndTime = *u.EndTime
		fieldsChanged = true
	}
	if u.VenueAddress != nil && *u.VenueAddress != s.input.VenueAddress {
		s.input.VenueAddress = *u.VenueAddress
		fieldsChanged = true
	}

	if !serviceChanged && !fieldsChanged {
		return s.generation, nil
	}

	s.generation++
	gen := s.generation
	input := s.input

	if serviceChanged {
		s.debouncer.Cancel()
		go s.recalculate(gen, input)
		return gen, nil
	}

	s.debouncer.Schedule(func() {
		s.recalculate(gen, input)
	})
	return gen, nil
}

// recalculate prices input and publishes the result unless a newer
// generation has been applied in the meantime.
func (s *Session) recalculate(gen uint64, input domain.EstimateInput) {
	est := s.estimator.Estimate(s.ctx, input)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if gen != s.generation {
		s.log.WithContext(s.ctx).Debug("stale estimate dropped", "generation", gen, "current", s.generation)
		return
	}

	up := Update{Generation: gen, Input: input, Estimate: est}
	s.latest = &up
	for _, sub := range s.subscribers {
		select {
		case sub.events <- up:
		default:
			s.log.WithContext(s.ctx).Warn("live quote event buffer full", "generation", gen)
		}
	}
}

// Subscribe registers a listener for estimates. The latest estimate, if any,
// is delivered first. The channel is closed when the session closes or the
// returned cancel function is called.
func (s *Session) Subscribe() (<-chan Update, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub := &subscriber{events: make(chan Update, subscriberBuffer)}
	if s.closed {
		close(sub.events)
		return sub.events, func() {}
	}
	if s.latest != nil {
		sub.events <- *s.latest
	}
	s.subscribers = append(s.subscribers, sub)
	s.lastSeen = s.now()

	return sub.events, func() { s.unsubscribe(sub) }
}

func (s *Session) unsubscribe(sub *subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, other := range s.subscribers {
		if other == sub {
			s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
			close(sub.events)
			break
		}
	}
	s.lastSeen = s.now()
}

// idleSince reports whether nobody is listening and the session has not been
// touched since cutoff.
func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers) == 0 && s.lastSeen.Before(cutoff)
}

// Close stops pending work, aborts in-flight lookups and ends all streams.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.debouncer.Stop()
	s.cancel()
	for _, sub := range s.subscribers {
		close(sub.events)
	}
	s.subscribers = nil
}
