package models

// WorkMode selects how attendance is verified.
type WorkMode string

const (
	WorkModePersonal    WorkMode = "personal"
	WorkModeOffLocation WorkMode = "off-location"
)

// Settings is the system configuration panel state.
type Settings struct {
	WorkMode         WorkMode `json:"workMode"`
	LocationTracking bool     `json:"locationTracking"`
	WifiVerification bool     `json:"wifiVerification"`
	AutoSave         bool     `json:"autoSave"`
}
