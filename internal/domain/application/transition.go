package application

import (
	"fmt"
	"strings"
	"time"

	"lamf-backoffice/internal/domain/apperr"
)

var ErrApproverRequired = fmt.Errorf("approved_by is required: %w", apperr.ErrInvalidInput)

// transitions is the only source of legal status changes.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusApproved, StatusRejected},
	StatusApproved:  {StatusDisbursed},
}

func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition moves the application to status `to` and applies that edge's side effects.
// On error the application is left untouched.
func (a *Application) Transition(to Status, actor string, now time.Time) error {
	if !CanTransition(a.Status, to) {
		return &apperr.TransitionError{Entity: "application", From: string(a.Status), To: string(to)}
	}
	actor = strings.TrimSpace(actor)
	if to == StatusApproved && actor == "" {
		return ErrApproverRequired
	}

	now = now.UTC()
	switch to {
	case StatusSubmitted:
		a.SubmittedAt = &now
	case StatusApproved:
		a.ApprovedAt = &now
		a.ApprovedBy = &actor
	case StatusRejected:
		a.RejectedAt = &now
	case StatusDisbursed:
		a.DisbursedAt = &now
	}
	a.Status = to
	a.UpdatedAt = now
	return nil
}
