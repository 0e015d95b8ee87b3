package application

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Maxito7/studio_backend/internal/catalog"
	"github.com/Maxito7/studio_backend/internal/config"
	"github.com/Maxito7/studio_backend/internal/domain"
	"github.com/Maxito7/studio_backend/internal/logging"
	"github.com/Maxito7/studio_backend/internal/viewer"
)

// Carousel widget names, in page order.
const (
	CarouselHero      = "hero"
	CarouselFilmstrip = "filmstrip"
	CarouselRoll      = "roll"
	CarouselServices  = "services"
)

var carouselOrder = []string{CarouselHero, CarouselFilmstrip, CarouselRoll, CarouselServices}

// Event is pushed to a session's subscribers.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Session is one visitor's viewer: the gallery with its lightbox, the four
// slideshow widgets and the contact form state.
type Session struct {
	ID      string
	Gallery *viewer.Gallery
	Form    *FormTracker

	carousels map[string]*viewer.Carousel

	mu       sync.Mutex
	lastSeen time.Time
	subs     map[int]chan Event
	nextSub  int
	closed   bool
}

type SessionSnapshot struct {
	ID        string                 `json:"id"`
	Gallery   viewer.GallerySnapshot `json:"gallery"`
	Carousels []viewer.CarouselState `json:"carousels"`
	Form      FormState              `json:"form"`
}

func (s *Session) Carousel(name string) (*viewer.Carousel, bool) {
	c, ok := s.carousels[name]
	return c, ok
}

func (s *Session) CarouselStates() []viewer.CarouselState {
	out := make([]viewer.CarouselState, 0, len(carouselOrder))
	for _, name := range carouselOrder {
		out = append(out, s.carousels[name].State())
	}
	return out
}

func (s *Session) Snapshot() SessionSnapshot {
	return SessionSnapshot{
		ID:        s.ID,
		Gallery:   s.Gallery.Snapshot(),
		Carousels: s.CarouselStates(),
		Form:      s.Form.State(),
	}
}

// Subscribe registers a buffered event channel. The channel is closed by
// cancel or when the session ends. Slow subscribers miss events rather than
// blocking the carousels.
func (s *Session) Subscribe(buffer int) (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Event, buffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

func (s *Session) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Session) publish(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

func (s *Session) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, c := range s.carousels {
		c.Close()
	}
	for _, ch := range subs {
		close(ch)
	}
}

// SessionManager keeps the live viewer sessions in memory, keyed by id.
type SessionManager struct {
	catalog *catalog.Catalog
	widgets config.CarouselsConfig
	cfg     config.SessionsConfig
	clock   viewer.Clock
	logger  *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionManager(c *catalog.Catalog, widgets config.CarouselsConfig, cfg config.SessionsConfig, clock viewer.Clock, logger *zap.Logger) *SessionManager {
	if clock == nil {
		clock = viewer.SystemClock()
	}
	logger = logging.OrNop(logger)
	return &SessionManager{
		catalog:  c,
		widgets:  widgets,
		cfg:      cfg,
		clock:    clock,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session with every carousel armed.
func (m *SessionManager) Create() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Gallery:   viewer.NewGallery(m.catalog.ImageSet()),
		Form:      &FormTracker{},
		carousels: make(map[string]*viewer.Carousel, len(carouselOrder)),
		lastSeen:  m.clock.Now(),
		subs:      make(map[int]chan Event),
	}

	if m.cfg.ViewportWidth > 0 && m.cfg.ViewportHeight > 0 {
		s.Gallery.Lightbox(func(l *viewer.Lightbox) {
			l.SetViewport(m.cfg.ViewportWidth, m.cfg.ViewportHeight)
		})
	}

	lengths := map[string]int{
		CarouselHero:      len(m.catalog.Hero),
		CarouselFilmstrip: len(s.Gallery.Images()),
		CarouselRoll:      len(m.catalog.RollImages()),
		CarouselServices:  len(m.catalog.Services),
	}
	for _, name := range carouselOrder {
		s.carousels[name] = viewer.NewCarousel(m.carouselConfig(name), lengths[name],
			viewer.WithClock(m.clock),
			viewer.WithLogger(m.logger),
			viewer.WithOnChange(func(st viewer.CarouselState) {
				s.publish(Event{Type: "carousel", Data: st})
			}),
		)
	}
	s.Gallery.Bind(s.carousels[CarouselFilmstrip])

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Debug("viewer session created", zap.String("session", s.ID))
	return s
}

func (m *SessionManager) carouselConfig(name string) viewer.CarouselConfig {
	var w config.CarouselConfig
	switch name {
	case CarouselHero:
		w = m.widgets.Hero
	case CarouselFilmstrip:
		w = m.widgets.Filmstrip
	case CarouselRoll:
		w = m.widgets.Roll
	case CarouselServices:
		w = m.widgets.Services
	}
	return viewer.CarouselConfig{
		Name:               name,
		Interval:           w.Interval,
		TransitionDuration: w.Transition,
		ResumeDelay:        w.ResumeDelay,
		Autoplay:           w.Autoplay,
	}
}

// Get returns the session and marks it as active.
func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	s.touch(m.clock.Now())
	return s, nil
}

// Close ends the session, stopping its timers and event streams.
func (m *SessionManager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	s.close()
	m.logger.Debug("viewer session closed", zap.String("session", id))
	return nil
}

// Sweep closes sessions idle longer than the configured TTL and returns how
// many were removed. A session with an open event stream counts as active.
func (m *SessionManager) Sweep() int {
	if m.cfg.TTL <= 0 {
		return 0
	}
	now := m.clock.Now()

	var expired []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.Subscribers() > 0 {
			s.touch(now)
			continue
		}
		if s.idleSince(now) > m.cfg.TTL {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
	if len(expired) > 0 {
		m.logger.Info("expired viewer sessions", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// CloseAll ends every session; used on shutdown.
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range all {
		s.close()
	}
}

func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
