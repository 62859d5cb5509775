package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
	"github.com/noah-isme/taptime-api/pkg/i18n"
)

const clockTimeLayout = "3:04:05 PM"

// DashboardConfig tunes the clock stream and the simulated WFH approval.
type DashboardConfig struct {
	ClockTick        time.Duration
	WFHApprovalDelay time.Duration
}

// DashboardService runs the dashboard shell: views, clocking and the WFH approval timer.
type DashboardService struct {
	sessions *SessionService
	metrics  *MetricsService
	logger   *zap.Logger
	config   DashboardConfig
	now      func() time.Time
}

// NewDashboardService constructs the service.
func NewDashboardService(sessions *SessionService, metrics *MetricsService, logger *zap.Logger, config DashboardConfig) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.ClockTick <= 0 {
		config.ClockTick = time.Second
	}
	if config.WFHApprovalDelay <= 0 {
		config.WFHApprovalDelay = 2 * time.Second
	}
	return &DashboardService{sessions: sessions, metrics: metrics, logger: logger, config: config, now: time.Now}
}

func mountedDashboard(session *models.Session) (*models.DashboardState, Surface, error) {
	if session.Nav.Screen != models.ScreenDashboard || session.Dashboard == nil {
		return nil, nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "dashboard is not mounted")
	}
	surface, err := ResolveSurface(session.Nav.User)
	if err != nil {
		return nil, nil, err
	}
	return session.Dashboard, surface, nil
}

func dashboardView(session *models.Session, dashboard *models.DashboardState, surface Surface) *dto.DashboardView {
	return &dto.DashboardView{
		Surface:    surface.Name(),
		Division:   session.Nav.User.Division,
		View:       dashboard.View,
		Views:      surface.Views(),
		ClockedIn:  dashboard.ClockedIn,
		ClockedAt:  dashboard.ClockedAt,
		WFHMode:    dashboard.WFHMode,
		WFHPending: dashboard.WFHPending,
		Overview:   surface.Overview(*session.Nav.User),
		Panel:      dashboard.Panel,
	}
}

func (s *DashboardService) mutate(ctx context.Context, sessionID string, fn func(*models.Session, *models.DashboardState, Surface) error) (*dto.DashboardView, error) {
	return s.mutateThen(ctx, sessionID, fn, nil)
}

// mutateThen runs onSaved under the session lock once the change is persisted. WFH timers are
// armed and cancelled there, never ahead of the stored state that tracks them.
func (s *DashboardService) mutateThen(ctx context.Context, sessionID string, fn func(*models.Session, *models.DashboardState, Surface) error, onSaved func(*models.Session)) (*dto.DashboardView, error) {
	var view *dto.DashboardView
	_, err := s.sessions.commit(ctx, sessionID, func(session *models.Session) error {
		dashboard, surface, err := mountedDashboard(session)
		if err != nil {
			return err
		}
		if err := fn(session, dashboard, surface); err != nil {
			return err
		}
		view = dashboardView(session, dashboard, surface)
		return nil
	}, onSaved)
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Dashboard returns the mounted dashboard and drains notices raised since the last read.
func (s *DashboardService) Dashboard(ctx context.Context, sessionID string) (*dto.DashboardView, []models.Notice, error) {
	var view *dto.DashboardView
	var notices []models.Notice
	_, err := s.sessions.Update(ctx, sessionID, func(session *models.Session) error {
		dashboard, surface, err := mountedDashboard(session)
		if err != nil {
			return err
		}
		view = dashboardView(session, dashboard, surface)
		if len(session.Inbox) == 0 {
			return errSkipSave
		}
		notices = session.Inbox
		session.Inbox = nil
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return view, notices, nil
}

// ChangeView switches the active view and mounts a freshly seeded panel for it.
func (s *DashboardService) ChangeView(ctx context.Context, sessionID string, view models.View) (*dto.DashboardView, error) {
	return s.mutate(ctx, sessionID, func(_ *models.Session, dashboard *models.DashboardState, surface Surface) error {
		if !HasView(surface, view) {
			return appErrors.Clone(appErrors.ErrForbidden, fmt.Sprintf("view %q is not available on the %s dashboard", view, surface.Name()))
		}
		dashboard.View = view
		dashboard.Panel = MountPanel(view)
		return nil
	})
}

// ToggleClock flips the clock state. HR division users in WFH mode are clocked in only
// after the approval timer fires; a repeated request replaces the pending approval.
func (s *DashboardService) ToggleClock(ctx context.Context, sessionID string) (*dto.DashboardView, *models.Notice, error) {
	var notice *models.Notice
	arm := false
	view, err := s.mutateThen(ctx, sessionID, func(_ *models.Session, dashboard *models.DashboardState, surface Surface) error {
		now := s.now()
		if surface.SupportsWFH() && dashboard.WFHMode && !dashboard.ClockedIn {
			arm = true
			dashboard.WFHPending = true
			notice = &models.Notice{Key: "wfh.pending", Level: i18n.LevelInfo}
			return nil
		}

		dashboard.ClockedIn = !dashboard.ClockedIn
		dashboard.ClockedAt = &now
		key := "clock.out"
		if dashboard.ClockedIn {
			key = "clock.in"
		}
		notice = &models.Notice{Key: key, Level: i18n.LevelSuccess, Data: map[string]interface{}{"Time": now.Format(clockTimeLayout)}}
		return nil
	}, func(session *models.Session) {
		if !arm {
			return
		}
		id := session.ID
		if s.sessions.runtimes.scheduleWFH(id, s.config.WFHApprovalDelay, func(seq uint64) { s.approveWFH(id, seq) }) {
			s.metrics.RecordWFH("replaced")
		}
	})
	if err != nil {
		return nil, nil, err
	}
	return view, notice, nil
}

// TimeOut clocks an HR division user out.
func (s *DashboardService) TimeOut(ctx context.Context, sessionID string) (*dto.DashboardView, *models.Notice, error) {
	var notice *models.Notice
	view, err := s.mutate(ctx, sessionID, func(_ *models.Session, dashboard *models.DashboardState, surface Surface) error {
		if !surface.SupportsWFH() {
			return appErrors.Clone(appErrors.ErrForbidden, "time out is only available on HR division dashboards")
		}
		if !dashboard.ClockedIn {
			return appErrors.Clone(appErrors.ErrConflict, "not clocked in")
		}
		now := s.now()
		dashboard.ClockedIn = false
		dashboard.ClockedAt = &now
		notice = &models.Notice{Key: "clock.out", Level: i18n.LevelSuccess, Data: map[string]interface{}{"Time": now.Format(clockTimeLayout)}}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return view, notice, nil
}

// SetWFHMode toggles WFH mode. Turning it off cancels a pending approval.
func (s *DashboardService) SetWFHMode(ctx context.Context, sessionID string, enabled bool) (*dto.DashboardView, error) {
	cancel := false
	return s.mutateThen(ctx, sessionID, func(_ *models.Session, dashboard *models.DashboardState, surface Surface) error {
		if !surface.SupportsWFH() {
			return appErrors.Clone(appErrors.ErrForbidden, "WFH mode is only available on HR division dashboards")
		}
		dashboard.WFHMode = enabled
		if !enabled && dashboard.WFHPending {
			cancel = true
			dashboard.WFHPending = false
		}
		return nil
	}, func(session *models.Session) {
		if cancel && s.sessions.runtimes.cancelWFH(session.ID) {
			s.metrics.RecordWFH("cancelled")
		}
	})
}

func (s *DashboardService) approveWFH(sessionID string, seq uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	approved := false
	_, err := s.sessions.Update(ctx, sessionID, func(session *models.Session) error {
		if !s.sessions.runtimes.claimWFH(sessionID, seq) {
			return errSkipSave
		}
		dashboard := session.Dashboard
		if dashboard == nil || !dashboard.WFHPending {
			return errSkipSave
		}
		now := s.now()
		dashboard.WFHPending = false
		dashboard.ClockedIn = true
		dashboard.ClockedAt = &now
		s.sessions.Notify(session, models.Notice{Key: "wfh.approved", Level: i18n.LevelSuccess})
		approved = true
		return nil
	})
	if err != nil {
		s.logger.Warn("wfh approval failed", zap.String("session_id", sessionID), zap.Error(err))
		return
	}
	if approved {
		s.metrics.RecordWFH("approved")
		s.logger.Info("wfh approved", zap.String("session_id", sessionID))
	}
}

// ClockStream emits the current time every tick until ctx ends or the dashboard is unmounted.
func (s *DashboardService) ClockStream(ctx context.Context, sessionID string) (<-chan dto.ClockTick, error) {
	var done <-chan struct{}
	var clockedIn bool
	_, err := s.sessions.Update(ctx, sessionID, func(session *models.Session) error {
		dashboard, _, err := mountedDashboard(session)
		if err != nil {
			return err
		}
		clockedIn = dashboard.ClockedIn
		done = s.sessions.runtimes.done(sessionID)
		return errSkipSave
	})
	if err != nil {
		return nil, err
	}

	out := make(chan dto.ClockTick, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(s.config.ClockTick)
		defer ticker.Stop()

		send := func(tick dto.ClockTick) bool {
			select {
			case out <- tick:
				return true
			case <-ctx.Done():
				return false
			case <-done:
				return false
			}
		}

		if !send(dto.ClockTick{Time: s.now(), ClockedIn: clockedIn}) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case <-ticker.C:
				session, err := s.sessions.Get(ctx, sessionID)
				if err != nil || session.Dashboard == nil {
					return
				}
				if !send(dto.ClockTick{Time: s.now(), ClockedIn: session.Dashboard.ClockedIn}) {
					return
				}
			}
		}
	}()
	return out, nil
}
