package dto

import (
	"github.com/noah-isme/taptime-api/internal/models"
)

// EventRequest is a navigation event dispatched by the client. Type selects which other fields apply.
type EventRequest struct {
	Type     string `json:"type" binding:"required"`
	Role     string `json:"role,omitempty"`
	Name     string `json:"name,omitempty"`
	Code     string `json:"code,omitempty"`
	Division string `json:"division,omitempty"`
}

// CreateSessionResponse returns the bearer token for a new session.
type CreateSessionResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expiresIn"`
	Session   SessionView `json:"session"`
}

// UserView is the client-safe projection of a session user.
type UserView struct {
	Role     models.Role      `json:"role"`
	Name     string           `json:"name"`
	Division *models.Division `json:"division,omitempty"`
}

// RegistrationView is shown on the registration-complete screen.
type RegistrationView struct {
	CompanyCode string `json:"companyCode"`
	AdminName   string `json:"adminName"`
	AdminCode   string `json:"adminCode"`
}

// SessionView is what clients see of their session.
type SessionView struct {
	ID           string            `json:"id"`
	Screen       models.Screen     `json:"screen"`
	User         *UserView         `json:"user,omitempty"`
	Registration *RegistrationView `json:"registration,omitempty"`
	Events       []string          `json:"events"`
	Version      int64             `json:"version"`
}

// NewSessionView projects a session for clients. events lists what may be dispatched next.
func NewSessionView(s *models.Session, events []string) SessionView {
	view := SessionView{
		ID:      s.ID,
		Screen:  s.Nav.Screen,
		Events:  events,
		Version: s.Version,
	}
	if u := s.Nav.User; u != nil {
		view.User = &UserView{Role: u.Role, Name: u.Name, Division: u.Division}
	}
	if r := s.Nav.Registration; r != nil && s.Nav.Screen == models.ScreenRegistrationComplete {
		view.Registration = &RegistrationView{CompanyCode: r.CompanyCode, AdminName: r.AdminName, AdminCode: r.AdminCode}
	}
	return view
}
