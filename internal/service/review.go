package service

import (
	"fmt"
	"strings"

	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

// Reviewable is an item that moves through a Workflow. WithStatus returns a copy; it never mutates.
type Reviewable[T any] interface {
	ReviewID() string
	ReviewStatus() models.ReviewStatus
	WithStatus(models.ReviewStatus) T
}

// Predicate selects items for display.
type Predicate[T any] func(T) bool

// Transition applies action to the item with id and returns the updated list and item.
// Only that item's status changes; order and every other item are preserved.
func Transition[T Reviewable[T]](items []T, id string, action models.ReviewAction, wf models.Workflow) ([]T, T, error) {
	var zero T
	for i, item := range items {
		if item.ReviewID() != id {
			continue
		}
		next, ok := wf.Next(item.ReviewStatus(), action)
		if !ok {
			if wf.Terminal(item.ReviewStatus()) {
				return items, zero, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("item %s is already %s", id, item.ReviewStatus()))
			}
			return items, zero, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("cannot %s item %s while %s", action, id, item.ReviewStatus()))
		}
		out := make([]T, len(items))
		copy(out, items)
		out[i] = item.WithStatus(next)
		return out, out[i], nil
	}
	return items, zero, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("item %s not found", id))
}

// Filter returns the items matching every predicate. The input is not modified.
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
outer:
	for _, item := range items {
		for _, p := range preds {
			if p != nil && !p(item) {
				continue outer
			}
		}
		out = append(out, item)
	}
	return out
}

// CountByStatus tallies items per status.
func CountByStatus[T Reviewable[T]](items []T) map[models.ReviewStatus]int {
	counts := make(map[models.ReviewStatus]int)
	for _, item := range items {
		counts[item.ReviewStatus()]++
	}
	return counts
}

// Matches reports whether got satisfies a filter value, where "" and "all" match anything.
func Matches(want, got string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(want, "all") || want == got
}

// HasStatus builds a predicate for a status filter value.
func HasStatus[T Reviewable[T]](want string) Predicate[T] {
	return func(item T) bool { return Matches(want, string(item.ReviewStatus())) }
}

// ParseAction validates a path action against a workflow.
func ParseAction(raw string, wf models.Workflow) (models.ReviewAction, error) {
	action := models.ReviewAction(strings.ToLower(strings.TrimSpace(raw)))
	for _, status := range wf.Statuses() {
		for _, allowed := range wf.Actions(status) {
			if allowed == action {
				return action, nil
			}
		}
	}
	return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown %s action %q", wf.Name, raw))
}
