package service

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

// EventKind names a navigation event.
type EventKind string

const (
	EventAccept         EventKind = "accept"
	EventRegister       EventKind = "register"
	EventLogin          EventKind = "login"
	EventPrivacy        EventKind = "privacy"
	EventComplete       EventKind = "complete"
	EventBack           EventKind = "back"
	EventGoToDashboard  EventKind = "go_to_dashboard"
	EventSelectDivision EventKind = "select_division"
	EventLogout         EventKind = "logout"
)

// Event is a typed navigation command consumed by Reduce.
type Event interface {
	Kind() EventKind
}

type (
	// Accept dismisses the security confirmation.
	Accept struct{}
	// Register opens the company registration wizard.
	Register struct{}
	// Privacy opens the privacy policy.
	Privacy struct{}
	// Back returns to the login screen.
	Back struct{}
	// Logout ends the dashboard session.
	Logout struct{}
)

// Login authenticates with a role, a display name and an access code.
// CodeHash is filled in by the caller; the reducer never hashes.
type Login struct {
	Role     models.Role `validate:"required,oneof=employee department-head hr-admin hr-division"`
	Name     string      `validate:"required"`
	Code     string      `validate:"required"`
	CodeHash string      `validate:"-"`
}

// Complete is emitted by the registration wizard on submit.
type Complete struct {
	Registration models.Registration
}

// GoToDashboard signs the registered admin in. CodeHash is the hashed admin code.
type GoToDashboard struct {
	CodeHash string
}

// SelectDivision attaches an HR division to the current user.
type SelectDivision struct {
	Division models.Division
}

func (Accept) Kind() EventKind         { return EventAccept }
func (Register) Kind() EventKind       { return EventRegister }
func (Privacy) Kind() EventKind        { return EventPrivacy }
func (Back) Kind() EventKind           { return EventBack }
func (Logout) Kind() EventKind         { return EventLogout }
func (Login) Kind() EventKind          { return EventLogin }
func (Complete) Kind() EventKind       { return EventComplete }
func (GoToDashboard) Kind() EventKind  { return EventGoToDashboard }
func (SelectDivision) Kind() EventKind { return EventSelectDivision }

var transitions = map[models.Screen][]EventKind{
	models.ScreenSecurityConfirmation: {EventAccept},
	models.ScreenLogin:                {EventLogin, EventRegister, EventPrivacy},
	models.ScreenRegistration:         {EventComplete, EventBack},
	models.ScreenRegistrationComplete: {EventGoToDashboard},
	models.ScreenPrivacyPolicy:        {EventBack},
	models.ScreenDivisionSelector:     {EventSelectDivision, EventBack},
	models.ScreenDashboard:            {EventLogout},
}

var eventValidator = validator.New()

// AllowedEvents lists the events defined for screen.
func AllowedEvents(screen models.Screen) []EventKind {
	return append([]EventKind(nil), transitions[screen]...)
}

// DispatchableEvents lists the events a client may send directly for screen.
// Complete is reserved for the wizard submit.
func DispatchableEvents(screen models.Screen) []string {
	out := make([]string, 0, len(transitions[screen]))
	for _, kind := range transitions[screen] {
		if kind == EventComplete {
			continue
		}
		out = append(out, string(kind))
	}
	return out
}

func allowed(screen models.Screen, kind EventKind) bool {
	for _, k := range transitions[screen] {
		if k == kind {
			return true
		}
	}
	return false
}

// Reduce computes the next navigation state. On error the input state is returned unchanged.
func Reduce(state models.NavState, ev Event) (models.NavState, error) {
	if ev == nil {
		return state, appErrors.Clone(appErrors.ErrValidation, "event is required")
	}
	if !allowed(state.Screen, ev.Kind()) {
		return state, appErrors.Clone(appErrors.ErrInvalidTransition, fmt.Sprintf("%s is not available on %s", ev.Kind(), state.Screen))
	}

	next := state
	switch e := ev.(type) {
	case Accept:
		next.Screen = models.ScreenLogin
	case Register:
		next.Screen = models.ScreenRegistration
	case Privacy:
		next.Screen = models.ScreenPrivacyPolicy
	case Back:
		next.Screen = models.ScreenLogin
	case Login:
		if err := eventValidator.Struct(e); err != nil {
			return state, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "role, name and code are required")
		}
		next.User = &models.User{Role: e.Role, Name: e.Name, CodeHash: e.CodeHash}
		next.Screen = models.ScreenDashboard
		if e.Role == models.RoleHRDivision {
			next.Screen = models.ScreenDivisionSelector
		}
	case Complete:
		reg := e.Registration
		next.Registration = &reg
		next.Screen = models.ScreenRegistrationComplete
	case GoToDashboard:
		if state.Registration == nil {
			return state, appErrors.Clone(appErrors.ErrPreconditionFailed, "no completed registration")
		}
		next.User = &models.User{
			Role:     models.RoleHRAdmin,
			Name:     state.Registration.AdminName,
			CodeHash: e.CodeHash,
		}
		next.Registration = nil
		next.Screen = models.ScreenDashboard
	case SelectDivision:
		if state.User == nil {
			return state, nil
		}
		if !e.Division.Valid() {
			return state, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown division %q", e.Division))
		}
		user := *state.User
		division := e.Division
		user.Division = &division
		next.User = &user
		next.Screen = models.ScreenDashboard
	case Logout:
		next.User = nil
		next.Screen = models.ScreenLogin
	default:
		return state, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported event %s", ev.Kind()))
	}
	return next, nil
}

// ParseEvent converts a client request into a typed event.
func ParseEvent(req dto.EventRequest) (Event, error) {
	switch EventKind(strings.ToLower(strings.TrimSpace(req.Type))) {
	case EventAccept:
		return Accept{}, nil
	case EventRegister:
		return Register{}, nil
	case EventPrivacy:
		return Privacy{}, nil
	case EventBack:
		return Back{}, nil
	case EventLogout:
		return Logout{}, nil
	case EventLogin:
		return Login{
			Role: models.Role(strings.ToLower(strings.TrimSpace(req.Role))),
			Name: strings.TrimSpace(req.Name),
			Code: strings.TrimSpace(req.Code),
		}, nil
	case EventGoToDashboard:
		return GoToDashboard{}, nil
	case EventSelectDivision:
		return SelectDivision{Division: models.Division(strings.TrimSpace(req.Division))}, nil
	case EventComplete:
		return nil, appErrors.Clone(appErrors.ErrValidation, "complete is issued by submitting the registration wizard")
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown event type %q", req.Type))
	}
}
