package savedjob

import (
	"time"

	"github.com/Abraxas-365/applymint/pkg/kernel"
)

// SavedJob is a job bookmarked by a signed-in user
type SavedJob struct {
	UserID  kernel.UserID `db:"user_id" json:"user_id"`
	JobID   kernel.JobID  `db:"job_id" json:"job_id"`
	SavedAt time.Time     `db:"saved_at" json:"saved_at"`
}
