package savedjobapi

import (
	"github.com/Abraxas-365/applymint/pkg/iam/auth"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/savedjob/savedjobsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for saved jobs
type Handlers struct {
	service *savedjobsrv.SavedJobService
}

func NewHandlers(service *savedjobsrv.SavedJobService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ListSavedJobs
// GET /api/me/saved-jobs
func (h *Handlers) ListSavedJobs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	saved, err := h.service.List(c.UserContext(), auth.CurrentUser(c), kernel.PaginationOptions{Page: page, PageSize: pageSize})
	if err != nil {
		return err
	}
	return c.JSON(saved)
}

// IsSaved
// GET /api/me/saved-jobs/:jobId
func (h *Handlers) IsSaved(c *fiber.Ctx) error {
	status, err := h.service.IsSaved(c.UserContext(), auth.CurrentUser(c), kernel.JobID(c.Params("jobId")))
	if err != nil {
		return err
	}
	return c.JSON(status)
}

// SaveJob
// POST /api/me/saved-jobs/:jobId
func (h *Handlers) SaveJob(c *fiber.Ctx) error {
	status, err := h.service.Save(c.UserContext(), auth.CurrentUser(c), kernel.JobID(c.Params("jobId")))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(status)
}

// UnsaveJob
// DELETE /api/me/saved-jobs/:jobId
func (h *Handlers) UnsaveJob(c *fiber.Ctx) error {
	if err := h.service.Unsave(c.UserContext(), auth.CurrentUser(c), kernel.JobID(c.Params("jobId"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	me := app.Group("/api/me/saved-jobs",
		authMiddleware.RequireUser(),
		authMiddleware.RequireScope(auth.ScopeSavedJobsOwn),
	)
	me.Get("/", handlers.ListSavedJobs)
	me.Get("/:jobId", handlers.IsSaved)
	me.Post("/:jobId", handlers.SaveJob)
	me.Delete("/:jobId", handlers.UnsaveJob)
}
