package models

// Wizard step bounds.
const (
	WizardFirstStep = 1
	WizardLastStep  = 5
)

// RegistrationForm holds every field the company registration wizard collects.
type RegistrationForm struct {
	CompanyName           string `json:"companyName"`
	Industry              string `json:"industry"`
	CompanySize           string `json:"companySize"`
	BusinessEmail         string `json:"businessEmail"`
	BusinessPhone         string `json:"businessPhone"`
	BusinessAddress       string `json:"businessAddress"`
	Timezone              string `json:"timezone"`
	AdminFullName         string `json:"adminFullName"`
	AdminCode             string `json:"adminCode"`
	LocationName          string `json:"locationName"`
	Latitude              string `json:"latitude"`
	Longitude             string `json:"longitude"`
	WifiSSID              string `json:"wifiSSID"`
	PrivacyPolicy         bool   `json:"privacyPolicy"`
	LocationConsent       bool   `json:"locationConsent"`
	DataProcessing        bool   `json:"dataProcessing"`
	Notifications         bool   `json:"notifications"`
	EmailVerificationCode string `json:"emailVerificationCode"`
	PhoneVerificationCode string `json:"phoneVerificationCode"`
}

// Wizard is the mounted state of the registration screen.
type Wizard struct {
	Step int              `json:"step"`
	Form RegistrationForm `json:"form"`
}

// WizardStep describes one page of the wizard for clients.
type WizardStep struct {
	Number int      `json:"number"`
	Title  string   `json:"title"`
	Fields []string `json:"fields"`
}

// Option is a value/label pair for a select input.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// WizardCatalog carries the step layout and option lists for the wizard's select inputs.
type WizardCatalog struct {
	Steps        []WizardStep `json:"steps"`
	Industries   []Option     `json:"industries"`
	CompanySizes []Option     `json:"companySizes"`
	Timezones    []Option     `json:"timezones"`
}

// GeolocationResult is what the client reports after asking the platform for a position.
type GeolocationResult struct {
	OK        bool    `json:"ok"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Error     string  `json:"error,omitempty"`
}
