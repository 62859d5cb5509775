package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
	"github.com/noah-isme/taptime-api/pkg/i18n"
)

type sessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}

// errSkipSave lets an Update callback finish without persisting anything.
var errSkipSave = errors.New("skip save")

// SessionService owns session state: it serialises access per session, applies navigation
// events and mounts or unmounts the resources bound to each screen.
type SessionService struct {
	store    sessionStore
	tokens   *TokenService
	metrics  *MetricsService
	logger   *zap.Logger
	locks    *sessionLocks
	runtimes *runtimeRegistry
	hashCode func(code string) (string, error)
	now      func() time.Time
}

// SessionServiceOption configures the service.
type SessionServiceOption func(*SessionService)

// WithCodeHasher overrides how access codes are hashed.
func WithCodeHasher(hasher func(code string) (string, error)) SessionServiceOption {
	return func(s *SessionService) {
		if hasher != nil {
			s.hashCode = hasher
		}
	}
}

// WithSessionClock overrides the time source.
func WithSessionClock(now func() time.Time) SessionServiceOption {
	return func(s *SessionService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSessionService constructs the service with defaults.
func NewSessionService(store sessionStore, tokens *TokenService, metrics *MetricsService, logger *zap.Logger, opts ...SessionServiceOption) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &SessionService{
		store:    store,
		tokens:   tokens,
		metrics:  metrics,
		logger:   logger,
		locks:    newSessionLocks(),
		runtimes: newRuntimeRegistry(),
		hashCode: bcryptHash,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

func bcryptHash(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Create starts a new session on the security confirmation screen and issues its token.
func (s *SessionService) Create(ctx context.Context) (*dto.CreateSessionResponse, error) {
	now := s.now().UTC()
	session := &models.Session{
		ID:        uuid.NewString(),
		Nav:       models.NavState{Screen: models.ScreenSecurityConfirmation},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	token, expiresAt, err := s.tokens.Issue(session.ID)
	if err != nil {
		return nil, err
	}
	s.metrics.SessionStarted()
	s.logger.Info("session created", zap.String("session_id", session.ID))
	return &dto.CreateSessionResponse{
		Token:     token,
		ExpiresIn: int64(expiresAt.Sub(now).Seconds()),
		Session:   s.View(session),
	}, nil
}

// Authenticate resolves a bearer token to its session id.
func (s *SessionService) Authenticate(token string) (string, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return "", err
	}
	return claims.SessionID(), nil
}

// View projects a session for clients.
func (s *SessionService) View(session *models.Session) dto.SessionView {
	return dto.NewSessionView(session, DispatchableEvents(session.Nav.Screen))
}

func (s *SessionService) load(ctx context.Context, id string) (*models.Session, error) {
	start := time.Now()
	session, err := s.store.Get(ctx, id)
	s.metrics.ObserveStore("load", err == nil, time.Since(start))
	if err != nil {
		if errors.Is(err, appErrors.ErrNotFound) {
			s.releaseRuntime(id)
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session has expired")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	return session, nil
}

func (s *SessionService) save(ctx context.Context, session *models.Session) error {
	start := time.Now()
	err := s.store.Save(ctx, session)
	s.metrics.ObserveStore("save", true, time.Since(start))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save session")
	}
	return nil
}

// Get loads a session under its lock.
func (s *SessionService) Get(ctx context.Context, id string) (*models.Session, error) {
	unlock := s.locks.lock(id)
	defer unlock()
	return s.load(ctx, id)
}

// Update loads the session under its lock, applies fn and persists the result when fn succeeds.
// Nothing is saved when fn fails, so a rejected operation leaves the session untouched.
func (s *SessionService) Update(ctx context.Context, id string, fn func(*models.Session) error) (*models.Session, error) {
	return s.commit(ctx, id, fn, nil)
}

// commit is Update with a hook run under the session lock once the new state is persisted.
func (s *SessionService) commit(ctx context.Context, id string, fn func(*models.Session) error, onSaved func(*models.Session)) (*models.Session, error) {
	unlock := s.locks.lock(id)
	defer unlock()

	session, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		if errors.Is(err, errSkipSave) {
			return session, nil
		}
		return nil, err
	}
	session.Version++
	session.UpdatedAt = s.now().UTC()
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	if onSaved != nil {
		onSaved(session)
	}
	return session, nil
}

// Dispatch applies a navigation event to the session.
func (s *SessionService) Dispatch(ctx context.Context, id string, ev Event) (*models.Session, *models.Notice, error) {
	var notice *models.Notice
	session, err := s.Update(ctx, id, func(session *models.Session) error {
		var applyErr error
		notice, applyErr = s.Apply(session, ev)
		return applyErr
	})
	if err != nil {
		return nil, nil, err
	}
	return session, notice, nil
}

// Apply runs ev through the reducer against a session the caller already holds the lock for.
func (s *SessionService) Apply(session *models.Session, ev Event) (*models.Notice, error) {
	if ev == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "event is required")
	}
	from := session.Nav.Screen
	prepared, err := s.prepare(session, ev)
	if err != nil {
		return nil, err
	}
	next, err := Reduce(session.Nav, prepared)
	s.metrics.RecordTransition(string(from), string(ev.Kind()), err)
	if err != nil {
		return nil, err
	}
	if err := s.remount(session, from, next); err != nil {
		return nil, err
	}
	session.Nav = next
	if from != next.Screen {
		s.logger.Debug("screen changed",
			zap.String("session_id", session.ID),
			zap.String("from", string(from)),
			zap.String("to", string(next.Screen)),
			zap.String("event", string(ev.Kind())),
		)
	}
	return transitionNotice(ev, next), nil
}

// prepare hashes access codes before they reach the reducer.
func (s *SessionService) prepare(session *models.Session, ev Event) (Event, error) {
	switch e := ev.(type) {
	case Login:
		if e.Code == "" || session.Nav.Screen != models.ScreenLogin {
			return e, nil
		}
		hash, err := s.hashCode(e.Code)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash access code")
		}
		e.CodeHash = hash
		return e, nil
	case GoToDashboard:
		reg := session.Nav.Registration
		if reg == nil || session.Nav.Screen != models.ScreenRegistrationComplete {
			return e, nil
		}
		hash, err := s.hashCode(reg.AdminCode)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash access code")
		}
		e.CodeHash = hash
		return e, nil
	default:
		return ev, nil
	}
}

// remount attaches or drops the screen-bound state when the screen changes.
func (s *SessionService) remount(session *models.Session, from models.Screen, next models.NavState) error {
	to := next.Screen
	if to == models.ScreenDashboard && from != models.ScreenDashboard {
		dashboard, err := NewDashboardState(next.User, s.now().UTC())
		if err != nil {
			return err
		}
		session.Dashboard = dashboard
	}
	if from == models.ScreenDashboard && to != models.ScreenDashboard {
		session.Dashboard = nil
		s.releaseRuntime(session.ID)
	}
	if to == models.ScreenRegistration && from != models.ScreenRegistration {
		session.Wizard = NewWizard()
	}
	if from == models.ScreenRegistration && to != models.ScreenRegistration {
		session.Wizard = nil
	}
	return nil
}

func transitionNotice(ev Event, next models.NavState) *models.Notice {
	switch e := ev.(type) {
	case Login, GoToDashboard:
		return &models.Notice{Key: "login.success", Level: i18n.LevelSuccess, Data: map[string]interface{}{"Name": next.User.Name}}
	case SelectDivision:
		if next.User == nil || next.User.Division == nil {
			return nil
		}
		return &models.Notice{Key: "division.selected", Level: i18n.LevelSuccess, Data: map[string]interface{}{"Division": string(e.Division)}}
	case Complete:
		return &models.Notice{Key: "registration.complete", Level: i18n.LevelSuccess, Data: map[string]interface{}{"CompanyCode": e.Registration.CompanyCode}}
	case Logout:
		return &models.Notice{Key: "logout", Level: i18n.LevelInfo}
	default:
		return nil
	}
}

// Notify queues a notice for delivery on the session's next dashboard read.
func (s *SessionService) Notify(session *models.Session, notice models.Notice) {
	session.Inbox = append(session.Inbox, notice)
}

// End deletes the session and releases everything bound to it.
func (s *SessionService) End(ctx context.Context, id string) error {
	unlock := s.locks.lock(id)
	defer unlock()

	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	s.releaseRuntime(id)
	if err := s.store.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete session")
	}
	s.metrics.SessionEnded()
	s.logger.Info("session ended", zap.String("session_id", id))
	return nil
}

func (s *SessionService) releaseRuntime(id string) {
	if s.runtimes.release(id) {
		s.metrics.RecordWFH("cancelled")
	}
}

// ReleaseExpired tears down the runtimes of sessions the store no longer holds, such as
// sessions dropped by TTL expiry. It returns how many were released.
func (s *SessionService) ReleaseExpired(ctx context.Context) int {
	released := 0
	for _, id := range s.runtimes.ids() {
		unlock := s.locks.lock(id)
		_, err := s.store.Get(ctx, id)
		if errors.Is(err, appErrors.ErrNotFound) {
			s.releaseRuntime(id)
			released++
		}
		unlock()
	}
	return released
}
