package savedjob

import (
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/job"
)

// SavedJobResponse - DTO for a bookmark with its assembled job
type SavedJobResponse struct {
	JobID   kernel.JobID     `json:"job_id"`
	SavedAt time.Time        `json:"saved_at"`
	Job     *job.JobResponse `json:"job,omitempty"`
}

// SavedStatusResponse - DTO answering whether a job is saved
type SavedStatusResponse struct {
	JobID kernel.JobID `json:"job_id"`
	Saved bool         `json:"saved"`
}

// Response type alias for paginated saved jobs
type PaginatedSavedJobsResponse = kernel.Paginated[SavedJobResponse]
