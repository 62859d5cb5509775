package models

// Priority ranks tasks on the management board.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is an HR division work item moving through the progress workflow.
type Task struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Division      Division     `json:"division"`
	AssignedTo    []string     `json:"assignedTo,omitempty"`
	DueDate       string       `json:"dueDate"`
	Status        ReviewStatus `json:"status"`
	Priority      Priority     `json:"priority,omitempty"`
	Documentation string       `json:"documentation,omitempty"`
}

func (t Task) ReviewID() string           { return t.ID }
func (t Task) ReviewStatus() ReviewStatus { return t.Status }
func (t Task) WithStatus(s ReviewStatus) Task {
	t.Status = s
	return t
}

// TrainingStatus is the schedule state of a training session.
type TrainingStatus string

const (
	TrainingUpcoming  TrainingStatus = "upcoming"
	TrainingOngoing   TrainingStatus = "ongoing"
	TrainingCompleted TrainingStatus = "completed"
)

// Training is a scheduled session run by Training & Management.
type Training struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Department string         `json:"department"`
	Schedule   string         `json:"schedule"`
	Time       string         `json:"time"`
	Venue      string         `json:"venue"`
	Status     TrainingStatus `json:"status"`
}
