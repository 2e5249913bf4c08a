package applicationapi

import (
	"github.com/Abraxas-365/applymint/pkg/iam/auth"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/application"
	"github.com/Abraxas-365/applymint/recruitment/application/applicationsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for application operations
type Handlers struct {
	service *applicationsrv.ApplicationService
}

// NewHandlers creates a new application handlers instance
func NewHandlers(service *applicationsrv.ApplicationService) *Handlers {
	return &Handlers{
		service: service,
	}
}

// Apply counts the click and redirects to the employer's application page
// GET /api/jobs/:id/apply
func (h *Handlers) Apply(c *fiber.Ctx) error {
	target := h.service.TrackApply(c.UserContext(), auth.CurrentUser(c), kernel.JobID(c.Params("id")))
	return c.Redirect(target, fiber.StatusFound)
}

// ListMyApplications lists the signed-in user's applications
// GET /api/me/applications
func (h *Handlers) ListMyApplications(c *fiber.Ctx) error {
	applications, err := h.service.ListMine(c.UserContext(), auth.CurrentUser(c), parsePaginationOptions(c))
	if err != nil {
		return err
	}

	return c.JSON(applications)
}

// UpdateApplicationStatus moves one of the user's applications forward
// PUT /api/me/applications/:id/status
func (h *Handlers) UpdateApplicationStatus(c *fiber.Ctx) error {
	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID == "" {
		return application.ErrApplicationNotFound().WithDetail("id", "missing or empty")
	}

	var req application.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return application.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateStatus(c.UserContext(), auth.CurrentUser(c), applicationID, req)
	if err != nil {
		return err
	}

	return c.JSON(updated)
}

func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", c.QueryInt("page_size", 20))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return kernel.PaginationOptions{
		Page:     page,
		PageSize: pageSize,
	}
}

// RegisterRoutes registers apply tracking and the user's application routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	app.Get("/api/jobs/:id/apply", handlers.Apply)

	me := app.Group("/api/me/applications",
		authMiddleware.RequireUser(),
		authMiddleware.RequireScope(auth.ScopeApplicationsOwn),
	)
	me.Get("/", handlers.ListMyApplications)
	me.Put("/:id/status", handlers.UpdateApplicationStatus)
}
