package application

import (
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/job"
)

// UpdateStatusRequest - DTO for moving an application to a new status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response type alias for paginated applications
type PaginatedApplicationsResponse = kernel.Paginated[ApplicationResponse]

// ApplicationResponse - DTO for returning application data with its job
type ApplicationResponse struct {
	ID              kernel.ApplicationID `json:"id"`
	JobID           kernel.JobID         `json:"job_id"`
	Status          ApplicationStatus    `json:"status"`
	ClickedAt       time.Time            `json:"clicked_at"`
	StatusChangedAt *time.Time           `json:"status_changed_at,omitempty"`
	Job             *job.JobResponse     `json:"job,omitempty"`
}

// ToResponse converts the entity; the job is attached by the service
func (a *Application) ToResponse() ApplicationResponse {
	return ApplicationResponse{
		ID:              a.ID,
		JobID:           a.JobID,
		Status:          a.Status,
		ClickedAt:       a.ClickedAt,
		StatusChangedAt: a.StatusChangedAt,
	}
}
