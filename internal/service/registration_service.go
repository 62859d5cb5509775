package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
	"github.com/noah-isme/taptime-api/pkg/export"
)

const (
	companyCodePrefix   = "COMP"
	companyCodeLength   = 6
	companyCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// CredentialsFileName is the download name of the registration credentials.
	CredentialsFileName = "taptime-credentials.txt"
)

var wizardSteps = []models.WizardStep{
	{Number: 1, Title: "Company Information", Fields: []string{"companyName", "industry", "companySize", "businessEmail", "businessPhone", "businessAddress", "timezone"}},
	{Number: 2, Title: "Admin Information", Fields: []string{"adminFullName", "adminCode"}},
	{Number: 3, Title: "Location Setup", Fields: []string{"locationName", "latitude", "longitude", "wifiSSID"}},
	{Number: 4, Title: "Privacy & Security", Fields: []string{"privacyPolicy", "locationConsent", "dataProcessing", "notifications"}},
	{Number: 5, Title: "Verification", Fields: []string{"emailVerificationCode", "phoneVerificationCode"}},
}

var industries = []models.Option{
	{Value: "technology", Label: "Technology"},
	{Value: "healthcare", Label: "Healthcare"},
	{Value: "finance", Label: "Finance"},
	{Value: "retail", Label: "Retail"},
	{Value: "manufacturing", Label: "Manufacturing"},
	{Value: "education", Label: "Education"},
	{Value: "other", Label: "Other"},
}

var companySizes = []models.Option{
	{Value: "1-10", Label: "1-10 employees"},
	{Value: "11-50", Label: "11-50 employees"},
	{Value: "51-200", Label: "51-200 employees"},
	{Value: "201-500", Label: "201-500 employees"},
	{Value: "501+", Label: "501+ employees"},
}

var timezones = []models.Option{
	{Value: "Asia/Manila", Label: "Asia/Manila (PHT - UTC+8)"},
	{Value: "Asia/Tokyo", Label: "Asia/Tokyo (JST - UTC+9)"},
	{Value: "Asia/Singapore", Label: "Asia/Singapore (SGT - UTC+8)"},
	{Value: "America/New_York", Label: "America/New York (EST - UTC-5)"},
	{Value: "America/Los_Angeles", Label: "America/Los Angeles (PST - UTC-8)"},
	{Value: "Europe/London", Label: "Europe/London (GMT - UTC+0)"},
	{Value: "Australia/Sydney", Label: "Australia/Sydney (AEDT - UTC+11)"},
}

var textFields = map[string]func(*models.RegistrationForm) *string{
	"companyName":           func(f *models.RegistrationForm) *string { return &f.CompanyName },
	"industry":              func(f *models.RegistrationForm) *string { return &f.Industry },
	"companySize":           func(f *models.RegistrationForm) *string { return &f.CompanySize },
	"businessEmail":         func(f *models.RegistrationForm) *string { return &f.BusinessEmail },
	"businessPhone":         func(f *models.RegistrationForm) *string { return &f.BusinessPhone },
	"businessAddress":       func(f *models.RegistrationForm) *string { return &f.BusinessAddress },
	"timezone":              func(f *models.RegistrationForm) *string { return &f.Timezone },
	"adminFullName":         func(f *models.RegistrationForm) *string { return &f.AdminFullName },
	"adminCode":             func(f *models.RegistrationForm) *string { return &f.AdminCode },
	"locationName":          func(f *models.RegistrationForm) *string { return &f.LocationName },
	"latitude":              func(f *models.RegistrationForm) *string { return &f.Latitude },
	"longitude":             func(f *models.RegistrationForm) *string { return &f.Longitude },
	"wifiSSID":              func(f *models.RegistrationForm) *string { return &f.WifiSSID },
	"emailVerificationCode": func(f *models.RegistrationForm) *string { return &f.EmailVerificationCode },
	"phoneVerificationCode": func(f *models.RegistrationForm) *string { return &f.PhoneVerificationCode },
}

var flagFields = map[string]func(*models.RegistrationForm) *bool{
	"privacyPolicy":   func(f *models.RegistrationForm) *bool { return &f.PrivacyPolicy },
	"locationConsent": func(f *models.RegistrationForm) *bool { return &f.LocationConsent },
	"dataProcessing":  func(f *models.RegistrationForm) *bool { return &f.DataProcessing },
	"notifications":   func(f *models.RegistrationForm) *bool { return &f.Notifications },
}

var selectFields = map[string][]models.Option{
	"industry":    industries,
	"companySize": companySizes,
	"timezone":    timezones,
}

// NewWizard returns a wizard on its first step with an empty form.
func NewWizard() *models.Wizard {
	return &models.Wizard{Step: models.WizardFirstStep}
}

// WizardCatalog describes the steps and select options of the wizard.
func WizardCatalog() models.WizardCatalog {
	steps := make([]models.WizardStep, len(wizardSteps))
	for i, step := range wizardSteps {
		step.Fields = append([]string(nil), step.Fields...)
		steps[i] = step
	}
	return models.WizardCatalog{
		Steps:        steps,
		Industries:   append([]models.Option(nil), industries...),
		CompanySizes: append([]models.Option(nil), companySizes...),
		Timezones:    append([]models.Option(nil), timezones...),
	}
}

// NextStep advances the wizard, stopping at the last step.
func NextStep(w *models.Wizard) {
	if w.Step < models.WizardLastStep {
		w.Step++
	}
}

// PreviousStep moves the wizard back, stopping at the first step.
func PreviousStep(w *models.Wizard) {
	if w.Step > models.WizardFirstStep {
		w.Step--
	}
}

// SetFields writes named fields into the form. Either every field is applied or none is.
func SetFields(w *models.Wizard, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "at least one field is required")
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	form := w.Form
	for _, name := range names {
		value := fields[name]
		if field, ok := textFields[name]; ok {
			text, ok := value.(string)
			if !ok {
				return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be a string", name))
			}
			if options, isSelect := selectFields[name]; isSelect && text != "" && !hasOption(options, text) {
				return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%q is not a valid %s", text, name))
			}
			*field(&form) = text
			continue
		}
		if field, ok := flagFields[name]; ok {
			flag, ok := value.(bool)
			if !ok {
				return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be a boolean", name))
			}
			*field(&form) = flag
			continue
		}
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown field %q", name))
	}
	w.Form = form
	return nil
}

func hasOption(options []models.Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// ApplyLocation writes a successful geolocation fix with six decimal places. It reports whether the form changed.
func ApplyLocation(w *models.Wizard, result models.GeolocationResult) bool {
	if !result.OK || result.Latitude < -90 || result.Latitude > 90 || result.Longitude < -180 || result.Longitude > 180 {
		return false
	}
	w.Form.Latitude = strconv.FormatFloat(result.Latitude, 'f', 6, 64)
	w.Form.Longitude = strconv.FormatFloat(result.Longitude, 'f', 6, 64)
	return true
}

type submission struct {
	AdminFullName string `validate:"required"`
	AdminCode     string `validate:"required"`
}

// RegistrationService drives the company registration wizard of a session.
type RegistrationService struct {
	sessions  *SessionService
	validator *validator.Validate
	logger    *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRegistrationService constructs the service. A nil rng is seeded from the clock.
func NewRegistrationService(sessions *SessionService, validate *validator.Validate, logger *zap.Logger, rng *rand.Rand) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RegistrationService{sessions: sessions, validator: validate, logger: logger, rng: rng}
}

// GenerateCompanyCode returns COMP followed by six uppercase alphanumerics. Codes are not guaranteed unique.
func (s *RegistrationService) GenerateCompanyCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b strings.Builder
	b.WriteString(companyCodePrefix)
	for i := 0; i < companyCodeLength; i++ {
		b.WriteByte(companyCodeAlphabet[s.rng.Intn(len(companyCodeAlphabet))])
	}
	return b.String()
}

func openWizard(session *models.Session) (*models.Wizard, error) {
	if session.Nav.Screen != models.ScreenRegistration || session.Wizard == nil {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "registration wizard is not open")
	}
	return session.Wizard, nil
}

func wizardView(w *models.Wizard) *dto.WizardView {
	return &dto.WizardView{
		Step:      w.Step,
		LastStep:  models.WizardLastStep,
		CanSubmit: w.Step == models.WizardLastStep,
		Form:      w.Form,
	}
}

func (s *RegistrationService) mutate(ctx context.Context, sessionID string, fn func(*models.Wizard) error) (*dto.WizardView, error) {
	var view *dto.WizardView
	_, err := s.sessions.Update(ctx, sessionID, func(session *models.Session) error {
		wizard, err := openWizard(session)
		if err != nil {
			return err
		}
		if err := fn(wizard); err != nil {
			return err
		}
		view = wizardView(wizard)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Wizard returns the current wizard state.
func (s *RegistrationService) Wizard(ctx context.Context, sessionID string) (*dto.WizardView, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	wizard, err := openWizard(session)
	if err != nil {
		return nil, err
	}
	return wizardView(wizard), nil
}

// Next advances one step.
func (s *RegistrationService) Next(ctx context.Context, sessionID string) (*dto.WizardView, error) {
	return s.mutate(ctx, sessionID, func(w *models.Wizard) error {
		NextStep(w)
		return nil
	})
}

// Previous goes back one step.
func (s *RegistrationService) Previous(ctx context.Context, sessionID string) (*dto.WizardView, error) {
	return s.mutate(ctx, sessionID, func(w *models.Wizard) error {
		PreviousStep(w)
		return nil
	})
}

// UpdateFields writes form fields by name.
func (s *RegistrationService) UpdateFields(ctx context.Context, sessionID string, req dto.UpdateFieldsRequest) (*dto.WizardView, error) {
	return s.mutate(ctx, sessionID, func(w *models.Wizard) error {
		return SetFields(w, req.Fields)
	})
}

// DetectLocation records the client's geolocation result. Failures are logged and leave the form as it was.
func (s *RegistrationService) DetectLocation(ctx context.Context, sessionID string, req dto.LocationRequest) (*dto.WizardView, error) {
	result := models.GeolocationResult{OK: req.OK, Latitude: req.Latitude, Longitude: req.Longitude, Error: req.Error}
	var view *dto.WizardView
	_, err := s.sessions.Update(ctx, sessionID, func(session *models.Session) error {
		wizard, err := openWizard(session)
		if err != nil {
			return err
		}
		view = wizardView(wizard)
		if !ApplyLocation(wizard, result) {
			s.logger.Warn("geolocation unavailable",
				zap.String("session_id", sessionID),
				zap.Bool("ok", result.OK),
				zap.String("error", result.Error),
			)
			return errSkipSave
		}
		view = wizardView(wizard)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Submit completes the wizard from its last step and moves the session to registration-complete.
func (s *RegistrationService) Submit(ctx context.Context, sessionID string) (*models.Session, *models.Notice, error) {
	var notice *models.Notice
	session, err := s.sessions.Update(ctx, sessionID, func(session *models.Session) error {
		wizard, err := openWizard(session)
		if err != nil {
			return err
		}
		if wizard.Step != models.WizardLastStep {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, fmt.Sprintf("registration can only be submitted from step %d", models.WizardLastStep))
		}
		form := wizard.Form
		if err := s.validator.Struct(submission{AdminFullName: strings.TrimSpace(form.AdminFullName), AdminCode: strings.TrimSpace(form.AdminCode)}); err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "admin full name and admin code are required")
		}
		ev := Complete{Registration: models.Registration{
			CompanyCode: s.GenerateCompanyCode(),
			AdminName:   strings.TrimSpace(form.AdminFullName),
			AdminCode:   strings.TrimSpace(form.AdminCode),
		}}
		notice, err = s.sessions.Apply(session, ev)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("company registered", zap.String("session_id", sessionID), zap.String("company_code", session.Nav.Registration.CompanyCode))
	return session, notice, nil
}

// Credentials renders the plain-text credentials file shown after registration.
func (s *RegistrationService) Credentials(ctx context.Context, sessionID string, now time.Time) ([]byte, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	reg := session.Nav.Registration
	if session.Nav.Screen != models.ScreenRegistrationComplete || reg == nil {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no completed registration")
	}
	return export.RenderText(export.TextDocument{
		Title: "TapTime Account Credentials",
		Fields: []export.Field{
			{Label: "Company Code", Value: reg.CompanyCode},
			{Label: "Admin Name", Value: reg.AdminName},
			{Label: "Admin Code", Value: reg.AdminCode},
		},
		Footer: []string{
			"Keep these credentials secure!",
			fmt.Sprintf("Generated on: %s", now.Format("2006-01-02")),
		},
	}), nil
}
