package dto

import (
	"time"

	"github.com/noah-isme/taptime-api/internal/models"
)

// ChangeViewRequest switches the dashboard's active view.
type ChangeViewRequest struct {
	View models.View `json:"view" validate:"required"`
}

// WFHModeRequest toggles work-from-home mode on HR division dashboards.
type WFHModeRequest struct {
	Enabled bool `json:"enabled"`
}

// DashboardView is the full dashboard payload.
type DashboardView struct {
	Surface    string             `json:"surface"`
	Division   *models.Division   `json:"division,omitempty"`
	View       models.View        `json:"view"`
	Views      []models.View      `json:"views"`
	ClockedIn  bool               `json:"clockedIn"`
	ClockedAt  *time.Time         `json:"clockedAt,omitempty"`
	WFHMode    bool               `json:"wfhMode"`
	WFHPending bool               `json:"wfhPending"`
	Overview   models.Overview    `json:"overview"`
	Panel      *models.PanelState `json:"panel,omitempty"`
}

// ClockTick is one frame of the clock display stream.
type ClockTick struct {
	Time      time.Time `json:"time"`
	ClockedIn bool      `json:"clockedIn"`
}
