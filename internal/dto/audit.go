package dto

// ActivityQuery pages through a session's audit trail.
type ActivityQuery struct {
	Action string `form:"action"`
	Limit  int    `form:"limit" validate:"omitempty,min=1,max=500"`
}
