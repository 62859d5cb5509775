package models

// ReviewStatus is the lifecycle state of a reviewable item.
type ReviewStatus string

const (
	StatusPending    ReviewStatus = "pending"
	StatusApproved   ReviewStatus = "approved"
	StatusRejected   ReviewStatus = "rejected"
	StatusInProgress ReviewStatus = "in-progress"
	StatusCompleted  ReviewStatus = "completed"
)

// ReviewAction moves an item from one status to the next.
type ReviewAction string

const (
	ActionApprove  ReviewAction = "approve"
	ActionReject   ReviewAction = "reject"
	ActionStart    ReviewAction = "start"
	ActionComplete ReviewAction = "complete"
)

// Workflow is a one-way status machine: an initial status and the allowed (status, action) moves.
type Workflow struct {
	Name    string
	Initial ReviewStatus
	order   []ReviewStatus
	moves   map[ReviewStatus]map[ReviewAction]ReviewStatus
}

// DecisionWorkflow covers approval queues: pending items are approved or rejected once.
var DecisionWorkflow = Workflow{
	Name:    "decision",
	Initial: StatusPending,
	order:   []ReviewStatus{StatusPending, StatusApproved, StatusRejected},
	moves: map[ReviewStatus]map[ReviewAction]ReviewStatus{
		StatusPending: {
			ActionApprove: StatusApproved,
			ActionReject:  StatusRejected,
		},
	},
}

// ProgressWorkflow covers task boards: pending, then in-progress, then completed.
var ProgressWorkflow = Workflow{
	Name:    "progress",
	Initial: StatusPending,
	order:   []ReviewStatus{StatusPending, StatusInProgress, StatusCompleted},
	moves: map[ReviewStatus]map[ReviewAction]ReviewStatus{
		StatusPending:    {ActionStart: StatusInProgress},
		StatusInProgress: {ActionComplete: StatusCompleted},
	},
}

// Next returns the status reached by applying action to from.
func (w Workflow) Next(from ReviewStatus, action ReviewAction) (ReviewStatus, bool) {
	to, ok := w.moves[from][action]
	return to, ok
}

// Actions lists the actions available from status, in a stable order.
func (w Workflow) Actions(from ReviewStatus) []ReviewAction {
	var out []ReviewAction
	for _, a := range []ReviewAction{ActionApprove, ActionReject, ActionStart, ActionComplete} {
		if _, ok := w.moves[from][a]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Terminal reports whether no action leaves status.
func (w Workflow) Terminal(status ReviewStatus) bool {
	return len(w.moves[status]) == 0
}

// Statuses lists every status the workflow can hold, initial first.
func (w Workflow) Statuses() []ReviewStatus {
	return append([]ReviewStatus(nil), w.order...)
}
