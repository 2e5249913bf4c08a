package skillapi

import (
	"github.com/Abraxas-365/applymint/pkg/iam/auth"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/skill"
	"github.com/Abraxas-365/applymint/recruitment/skill/skillsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for skills
type Handlers struct {
	service *skillsrv.SkillService
}

func NewHandlers(service *skillsrv.SkillService) *Handlers {
	return &Handlers{service: service}
}

// ListSkills lists skills
// GET /api/skills?category=&search=&orderBy=name|category&orderDirection=asc|desc&page=&pageSize=
func (h *Handlers) ListSkills(c *fiber.Ctx) error {
	opts := skill.NewListOptions(
		c.Query("category"),
		c.Query("search"),
		c.Query("orderBy"),
		c.Query("orderDirection"),
		c.QueryInt("page", 1),
		c.QueryInt("pageSize", skill.DefaultPageSize),
	)

	skills, err := h.service.ListSkills(c.UserContext(), opts)
	if err != nil {
		return err
	}
	return c.JSON(skills)
}

// PopularSkills lists the most used skills
// GET /api/skills/popular?limit=10
func (h *Handlers) PopularSkills(c *fiber.Ctx) error {
	popular, err := h.service.PopularSkills(c.UserContext(), c.QueryInt("limit", skill.DefaultPopularLimit))
	if err != nil {
		return err
	}
	return c.JSON(popular)
}

// GetSkill retrieves a skill by ID
// GET /api/skills/:id
func (h *Handlers) GetSkill(c *fiber.Ctx) error {
	s, err := h.service.GetSkill(c.UserContext(), kernel.SkillID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(s)
}

// GetSkillByName retrieves a skill by name
// GET /api/skills/by-name/:name
func (h *Handlers) GetSkillByName(c *fiber.Ctx) error {
	s, err := h.service.GetSkillByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(s)
}

// CreateSkill creates a skill
// POST /api/admin/skills
func (h *Handlers) CreateSkill(c *fiber.Ctx) error {
	var req skill.CreateSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return skill.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	s, err := h.service.CreateSkill(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// UpdateSkill updates a skill
// PUT /api/admin/skills/:id
func (h *Handlers) UpdateSkill(c *fiber.Ctx) error {
	var req skill.UpdateSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return skill.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	s, err := h.service.UpdateSkill(c.UserContext(), kernel.SkillID(c.Params("id")), req)
	if err != nil {
		return err
	}
	return c.JSON(s)
}

// DeleteSkill deletes a skill
// DELETE /api/admin/skills/:id
func (h *Handlers) DeleteSkill(c *fiber.Ctx) error {
	if err := h.service.DeleteSkill(c.UserContext(), kernel.SkillID(c.Params("id"))); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	api := app.Group("/api/skills")
	api.Get("/", handlers.ListSkills)
	api.Get("/popular", handlers.PopularSkills)
	api.Get("/by-name/:name", handlers.GetSkillByName)
	api.Get("/:id", handlers.GetSkill)

	admin := app.Group("/api/admin/skills", authMiddleware.RequireScope(auth.ScopeTaxonomyWrite))
	admin.Post("/", handlers.CreateSkill)
	admin.Put("/:id", handlers.UpdateSkill)
	admin.Delete("/:id", handlers.DeleteSkill)
}
