package companyapi

import (
	"github.com/Abraxas-365/applymint/pkg/iam/auth"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/company"
	"github.com/Abraxas-365/applymint/recruitment/company/companysrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for company operations
type Handlers struct {
	service *companysrv.CompanyService
}

// NewHandlers creates a new company handlers instance
func NewHandlers(service *companysrv.CompanyService) *Handlers {
	return &Handlers{service: service}
}

// ListCompanies lists companies ordered by name
// GET /api/companies
func (h *Handlers) ListCompanies(c *fiber.Ctx) error {
	companies, err := h.service.ListCompanies(c.UserContext(), parsePaginationOptions(c))
	if err != nil {
		return err
	}
	return c.JSON(companies)
}

// GetCompany retrieves a company by ID
// GET /api/companies/:id
func (h *Handlers) GetCompany(c *fiber.Ctx) error {
	id := kernel.CompanyID(c.Params("id"))
	if id.IsEmpty() {
		return company.ErrCompanyNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.GetCompany(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateCompany creates a new company
// POST /api/admin/companies
func (h *Handlers) CreateCompany(c *fiber.Ctx) error {
	var req company.CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return company.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	created, err := h.service.CreateCompany(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateCompany applies a partial update
// PUT /api/admin/companies/:id
func (h *Handlers) UpdateCompany(c *fiber.Ctx) error {
	id := kernel.CompanyID(c.Params("id"))

	var req company.UpdateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return company.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateCompany(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// DeleteCompany deletes a company without jobs
// DELETE /api/admin/companies/:id
func (h *Handlers) DeleteCompany(c *fiber.Ctx) error {
	if err := h.service.DeleteCompany(c.UserContext(), kernel.CompanyID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
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

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/companies")
	api.Get("/", handlers.ListCompanies)
	api.Get("/:id", handlers.GetCompany)

	admin := app.Group("/api/admin/companies", authMiddleware.RequireScope(auth.ScopeCompaniesWrite))
	admin.Post("/", handlers.CreateCompany)
	admin.Put("/:id", handlers.UpdateCompany)
	admin.Delete("/:id", handlers.DeleteCompany)
}
