package sharecardapi

import (
	"io"

	"github.com/Abraxas-365/applymint/pkg/iam/auth"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/sharecard"
	"github.com/Abraxas-365/applymint/recruitment/sharecard/sharecardsrv"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for share images and uploads
type Handlers struct {
	service *sharecardsrv.Service
}

func NewHandlers(service *sharecardsrv.Service) *Handlers {
	return &Handlers{
		service: service,
	}
}

// ListTemplates lists the available card templates
// GET /api/admin/share-templates
func (h *Handlers) ListTemplates(c *fiber.Ctx) error {
	return c.JSON(sharecard.Templates)
}

// Preview renders a job's share card and returns the PNG
// GET /api/admin/jobs/:id/share-image/preview?template=tech&fontScale=120
func (h *Handlers) Preview(c *fiber.Ctx) error {
	var opts sharecard.Options
	if err := c.QueryParser(&opts); err != nil {
		return sharecard.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	data, err := h.service.Preview(c.UserContext(), kernel.JobID(c.Params("id")), opts)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Send(data)
}

// Generate queues rendering and publishing of a job's share card
// POST /api/admin/jobs/:id/share-image
func (h *Handlers) Generate(c *fiber.Ctx) error {
	var opts sharecard.Options
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&opts); err != nil {
			return sharecard.ErrInvalidRequest().WithDetail("parse_error", err.Error())
		}
	}

	task, err := h.service.Enqueue(c.UserContext(), kernel.JobID(c.Params("id")), opts)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(task)
}

// UploadImage stores a multipart image upload
// POST /api/admin/uploads/image (field "image")
func (h *Handlers) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return sharecard.ErrInvalidRequest().WithDetail("image", "multipart field is required")
	}
	if file.Size > sharecardsrv.MaxUploadSize {
		return sharecard.ErrFileSizeTooLarge().
			WithDetail("size", file.Size).
			WithDetail("max_size", sharecardsrv.MaxUploadSize)
	}

	f, err := file.Open()
	if err != nil {
		return sharecard.ErrInvalidRequest().WithDetail("open_error", err.Error())
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, sharecardsrv.MaxUploadSize+1))
	if err != nil {
		return sharecard.ErrInvalidRequest().WithDetail("read_error", err.Error())
	}

	url, err := h.service.UploadImage(c.UserContext(), file.Filename, file.Header.Get(fiber.HeaderContentType), data)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}

func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware *auth.Middleware) {
	app.Get("/api/admin/share-templates",
		authMiddleware.RequireScope(auth.ScopeJobsShare),
		handlers.ListTemplates,
	)

	app.Get("/api/admin/jobs/:id/share-image/preview",
		authMiddleware.RequireScope(auth.ScopeJobsShare),
		handlers.Preview,
	)

	app.Post("/api/admin/jobs/:id/share-image",
		authMiddleware.RequireScope(auth.ScopeJobsShare),
		handlers.Generate,
	)

	app.Post("/api/admin/uploads/image",
		authMiddleware.RequireScope(auth.ScopeUploadsWrite),
		handlers.UploadImage,
	)
}
