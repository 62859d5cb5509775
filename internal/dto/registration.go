package dto

import "github.com/noah-isme/taptime-api/internal/models"

// UpdateFieldsRequest sets one or more wizard fields by name.
type UpdateFieldsRequest struct {
	Fields map[string]interface{} `json:"fields" binding:"required"`
}

// LocationRequest reports the outcome of the client's geolocation lookup.
type LocationRequest struct {
	OK        bool    `json:"ok"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Error     string  `json:"error"`
}

// WizardView is the registration wizard as shown to clients.
type WizardView struct {
	Step      int                     `json:"step"`
	LastStep  int                     `json:"lastStep"`
	CanSubmit bool                    `json:"canSubmit"`
	Form      models.RegistrationForm `json:"form"`
}
