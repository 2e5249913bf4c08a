package jobapi

import (
	"github.com/Abraxas-365/applymint/pkg/iam/auth"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/job"
	"github.com/Abraxas-365/applymint/recruitment/job/jobsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ============================================================================
// Public
// ============================================================================

// ListJobs searches active jobs
// GET /api/jobs?search=&domain=&skill=&jobType=&minSalary=&sortBy=&page=&pageSize=
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	filters := job.ParseFilterOptions(queryValues(c))

	jobs, err := h.service.Search(c.UserContext(), filters)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// GetJobByID retrieves a job and counts the view
// GET /api/jobs/:id
func (h *Handlers) GetJobByID(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))

	jobResp, err := h.service.GetJobByID(c.UserContext(), jobID)
	if err != nil {
		return err
	}
	if jobResp == nil {
		return job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}

	h.service.IncrementView(c.UserContext(), jobID)
	jobResp.ViewCount++

	return c.JSON(jobResp)
}

// GetSimilarJobs lists jobs sharing domains or skills with a job
// GET /api/jobs/:id/similar?limit=3
func (h *Handlers) GetSimilarJobs(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", job.DefaultSimilarCount)

	similar, err := h.service.GetSimilar(c.UserContext(), kernel.JobID(c.Params("id")), limit)
	if err != nil {
		return err
	}

	return c.JSON(similar)
}

// ============================================================================
// Admin
// ============================================================================

// ListAdminJobs searches all jobs; includeInactive=true shows unlisted ones
// GET /api/admin/jobs
func (h *Handlers) ListAdminJobs(c *fiber.Ctx) error {
	filters := job.ParseAdminFilterOptions(queryValues(c))

	jobs, err := h.service.ListAdminJobs(c.UserContext(), filters)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// GetAdminJob retrieves a job without counting a view
// GET /api/admin/jobs/:id
func (h *Handlers) GetAdminJob(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))

	jobResp, err := h.service.GetJobByID(c.UserContext(), jobID)
	if err != nil {
		return err
	}
	if jobResp == nil {
		return job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}

	return c.JSON(jobResp)
}

// CreateJob creates a new job posting
// POST /api/admin/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	newJob, err := h.service.CreateJob(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newJob)
}

// UpdateJob updates an existing job
// PUT /api/admin/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateJob(c.UserContext(), kernel.JobID(c.Params("id")), req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// DeleteJob deletes a job
// DELETE /api/admin/jobs/:id
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	if err := h.service.DeleteJob(c.UserContext(), kernel.JobID(c.Params("id"))); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// SetJobActive lists or unlists a job
// PUT /api/admin/jobs/:id/active
func (h *Handlers) SetJobActive(c *fiber.Ctx) error {
	var req job.SetActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.SetJobActive(c.UserContext(), kernel.JobID(c.Params("id")), req.IsActive)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

// GetJobStats retrieves engagement statistics for a job
// GET /api/admin/jobs/:id/stats
func (h *Handlers) GetJobStats(c *fiber.Ctx) error {
	stats, err := h.service.GetJobStats(c.UserContext(), kernel.JobID(c.Params("id")))
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// DeactivateExpired runs the expiry sweep on demand
// POST /api/admin/jobs/deactivate-expired
func (h *Handlers) DeactivateExpired(c *fiber.Ctx) error {
	result, err := h.service.DeactivateExpired(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// ============================================================================
// Helper Functions
// ============================================================================

// queryValues collects every value of every query key, so repeated keys
// can be told apart from single ones
func queryValues(c *fiber.Ctx) map[string][]string {
	values := make(map[string][]string)
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		values[k] = append(values[k], string(value))
	})
	return values
}

// RegisterRoutes registers all job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/jobs")

	api.Get("/", handlers.ListJobs)
	api.Get("/:id", handlers.GetJobByID)
	api.Get("/:id/similar", handlers.GetSimilarJobs)

	admin := app.Group("/api/admin/jobs")

	admin.Get("/",
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.ListAdminJobs,
	)

	admin.Post("/",
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.CreateJob,
	)

	admin.Post("/deactivate-expired",
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.DeactivateExpired,
	)

	admin.Get("/:id",
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.GetAdminJob,
	)

	admin.Put("/:id",
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.UpdateJob,
	)

	admin.Delete("/:id",
		authMiddleware.RequireScope(auth.ScopeJobsDelete),
		handlers.DeleteJob,
	)

	admin.Put("/:id/active",
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.SetJobActive,
	)

	admin.Get("/:id/stats",
		authMiddleware.RequireScope(auth.ScopeJobsWrite),
		handlers.GetJobStats,
	)
}
