package domainapi

import (
	"github.com/Abraxas-365/applymint/pkg/iam/auth"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/domain"
	"github.com/Abraxas-365/applymint/recruitment/domain/domainsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for the domain taxonomy
type Handlers struct {
	service *domainsrv.DomainService
}

func NewHandlers(service *domainsrv.DomainService) *Handlers {
	return &Handlers{service: service}
}

// ListDomains lists domains with their subdomains
// GET /api/domains
func (h *Handlers) ListDomains(c *fiber.Ctx) error {
	domains, err := h.service.ListDomains(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(domains)
}

// PopularDomains lists the domains with most active jobs
// GET /api/domains/popular?limit=5
func (h *Handlers) PopularDomains(c *fiber.Ctx) error {
	popular, err := h.service.PopularDomains(c.UserContext(), c.QueryInt("limit", domain.DefaultPopularLimit))
	if err != nil {
		return err
	}
	return c.JSON(popular)
}

// GetDomain retrieves a domain by ID
// GET /api/domains/:id
func (h *Handlers) GetDomain(c *fiber.Ctx) error {
	d, err := h.service.GetDomain(c.UserContext(), kernel.DomainID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(d)
}

// GetDomainByName retrieves a domain by name
// GET /api/domains/by-name/:name
func (h *Handlers) GetDomainByName(c *fiber.Ctx) error {
	d, err := h.service.GetDomainByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(d)
}

// CreateDomain creates a domain
// POST /api/admin/domains
func (h *Handlers) CreateDomain(c *fiber.Ctx) error {
	var req domain.CreateDomainRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	d, err := h.service.CreateDomain(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

// UpdateDomain updates a domain
// PUT /api/admin/domains/:id
func (h *Handlers) UpdateDomain(c *fiber.Ctx) error {
	var req domain.UpdateDomainRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	d, err := h.service.UpdateDomain(c.UserContext(), kernel.DomainID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.JSON(d)
}

// DeleteDomain deletes a domain
// DELETE /api/admin/domains/:id
func (h *Handlers) DeleteDomain(c *fiber.Ctx) error {
	if err := h.service.DeleteDomain(c.UserContext(), kernel.DomainID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateSubdomain adds a subdomain to a domain
// POST /api/admin/domains/:id/subdomains
func (h *Handlers) CreateSubdomain(c *fiber.Ctx) error {
	var req domain.CreateSubdomainRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	sub, err := h.service.CreateSubdomain(c.UserContext(), kernel.DomainID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(sub)
}

// DeleteSubdomain deletes a subdomain
// DELETE /api/admin/subdomains/:id
func (h *Handlers) DeleteSubdomain(c *fiber.Ctx) error {
	if err := h.service.DeleteSubdomain(c.UserContext(), kernel.SubdomainID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/domains")
	api.Get("/", handlers.ListDomains)
	api.Get("/popular", handlers.PopularDomains)
	api.Get("/by-name/:name", handlers.GetDomainByName)
	api.Get("/:id", handlers.GetDomain)

	requireTaxonomy := authMiddleware.RequireScope(auth.ScopeTaxonomyWrite)

	admin := app.Group("/api/admin/domains", requireTaxonomy)
	admin.Post("/", handlers.CreateDomain)
	admin.Put("/:id", handlers.UpdateDomain)
	admin.Delete("/:id", handlers.DeleteDomain)
	admin.Post("/:id/subdomains", handlers.CreateSubdomain)

	app.Delete("/api/admin/subdomains/:id", requireTaxonomy, handlers.DeleteSubdomain)
}
