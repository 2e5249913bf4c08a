package application

import (
	"slices"
	"strings"
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
)

// ApplicationStatus represents how far a user got with a job application
type ApplicationStatus string

const (
	ApplicationStatusClicked      ApplicationStatus = "CLICKED"      // Followed the apply link
	ApplicationStatusApplied      ApplicationStatus = "APPLIED"      // Submitted on the employer's site
	ApplicationStatusInterviewing ApplicationStatus = "INTERVIEWING" // In interview process
	ApplicationStatusOffered      ApplicationStatus = "OFFERED"      // Received an offer
	ApplicationStatusRejected     ApplicationStatus = "REJECTED"     // Rejected
)

var validTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusClicked: {
		ApplicationStatusApplied,
		ApplicationStatusRejected,
	},
	ApplicationStatusApplied: {
		ApplicationStatusInterviewing,
		ApplicationStatusRejected,
	},
	ApplicationStatusInterviewing: {
		ApplicationStatusOffered,
		ApplicationStatusRejected,
	},
}

// ParseStatus maps s onto a known status, ignoring case
func ParseStatus(s string) (ApplicationStatus, bool) {
	status := ApplicationStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case ApplicationStatusClicked, ApplicationStatusApplied, ApplicationStatusInterviewing,
		ApplicationStatusOffered, ApplicationStatusRejected:
		return status, true
	}
	return "", false
}

// Application records that a user followed a job's application link and
// tracks their progress afterwards. There is at most one per (user, job).
type Application struct {
	ID              kernel.ApplicationID `db:"id" json:"id"`
	UserID          kernel.UserID        `db:"user_id" json:"user_id"`
	JobID           kernel.JobID         `db:"job_id" json:"job_id"`
	Status          ApplicationStatus    `db:"status" json:"status"`
	ClickedAt       time.Time            `db:"clicked_at" json:"clicked_at"`
	StatusChangedAt *time.Time           `db:"status_changed_at" json:"status_changed_at,omitempty"`
	CreatedAt       time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time            `db:"updated_at" json:"updated_at"`
}

// NewClick builds the application recorded on a user's first click
func NewClick(id kernel.ApplicationID, userID kernel.UserID, jobID kernel.JobID, now time.Time) *Application {
	return &Application{
		ID:        id,
		UserID:    userID,
		JobID:     jobID,
		Status:    ApplicationStatusClicked,
		ClickedAt: now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsTerminal reports whether no further transition is possible
func (a *Application) IsTerminal() bool {
	return a.Status == ApplicationStatusOffered || a.Status == ApplicationStatusRejected
}

// BelongsTo reports whether userID owns the application
func (a *Application) BelongsTo(userID kernel.UserID) bool {
	return !userID.IsEmpty() && a.UserID == userID
}

// CanUpdateStatus checks if status can be changed
func (a *Application) CanUpdateStatus(newStatus ApplicationStatus) bool {
	allowed, ok := validTransitions[a.Status]
	if !ok {
		return false
	}
	return slices.Contains(allowed, newStatus)
}

// UpdateStatus updates the application status
func (a *Application) UpdateStatus(newStatus ApplicationStatus, now time.Time) error {
	if !a.CanUpdateStatus(newStatus) {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", a.Status).
			WithDetail("new_status", newStatus)
	}

	a.Status = newStatus
	a.StatusChangedAt = &now
	a.UpdatedAt = now
	return nil
}
