package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abraxas-365/applymint/pkg/config"
	"github.com/Abraxas-365/applymint/pkg/errx"
	"github.com/Abraxas-365/applymint/pkg/fsx"
	"github.com/Abraxas-365/applymint/pkg/logx"
	"github.com/Abraxas-365/applymint/recruitment/application/applicationapi"
	"github.com/Abraxas-365/applymint/recruitment/company/companyapi"
	"github.com/Abraxas-365/applymint/recruitment/domain/domainapi"
	"github.com/Abraxas-365/applymint/recruitment/job/jobapi"
	"github.com/Abraxas-365/applymint/recruitment/savedjob/savedjobapi"
	"github.com/Abraxas-365/applymint/recruitment/sharecard/sharecardapi"
	"github.com/Abraxas-365/applymint/recruitment/sharecard/sharecardsrv"
	"github.com/Abraxas-365/applymint/recruitment/skill/skillapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to a YAML config file")
	flag.Parse()

	// 1. Configuration and logger
	cfg, err := config.Load(*configPath)
	if err != nil {
		logx.Fatalf("failed to load config: %v", err)
	}
	level, _ := logx.ParseLevel(cfg.Log.Level)
	logx.SetLevel(level)
	defer logx.Sync()
	logx.Info("starting ApplyMint API server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Dependency container
	container, err := NewContainer(ctx, cfg)
	if err != nil {
		logx.Fatalf("failed to initialize: %v", err)
	}
	defer container.Close()

	// 3. Fiber app; uploads get a little headroom over the image limit
	app := fiber.New(fiber.Config{
		AppName:               "ApplyMint API",
		DisableStartupMessage: true,
		ErrorHandler:          globalErrorHandler,
		BodyLimit:             sharecardsrv.MaxUploadSize + 1<<20,
		// Route params reach the repositories; keep them off the reused request buffer
		Immutable: true,
	})

	// 4. Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-API-Key",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(container.AuthMiddleware.Identify())

	// 5. Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		ready, delayed, err := container.Queue.Size(c.Context())
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.PingContext(c.Context()) == nil,
			"redis":  err == nil,
			"share_queue": fiber.Map{
				"ready":   ready,
				"delayed": delayed,
			},
		})
	})

	// Local runs without a bucket serve uploads from memory
	if mem, ok := container.Storage.(*fsx.MemoryFileSystem); ok {
		app.Get("/files/*", func(c *fiber.Ctx) error {
			key := c.Params("*")
			data, err := mem.ReadFile(c.Context(), key)
			if err != nil {
				return fiber.ErrNotFound
			}
			if contentType, ok := mem.ContentType(key); ok {
				c.Set(fiber.HeaderContentType, contentType)
			}
			return c.Send(data)
		})
	}

	// 6. Routes
	mw := container.AuthMiddleware
	companyapi.RegisterRoutes(app, container.CompanyHandlers, mw)
	domainapi.RegisterRoutes(app, container.DomainHandlers, mw)
	skillapi.RegisterRoutes(app, container.SkillHandlers, mw)
	jobapi.RegisterRoutes(app, container.JobHandlers, mw)
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers, mw)
	savedjobapi.RegisterRoutes(app, container.SavedJobHandlers, mw)
	sharecardapi.RegisterRoutes(app, container.ShareCardHandlers, mw)

	// 7. Background work
	container.ShareCardWorker.Start(ctx)
	if err := container.Scheduler.Start(ctx); err != nil {
		logx.Fatalf("failed to start scheduler: %v", err)
	}

	go func() {
		logx.Info("server listening", zap.String("port", cfg.Server.Port))
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			logx.Error("server error", zap.Error(err))
			stop()
		}
	}()

	// 8. Graceful shutdown
	<-ctx.Done()
	logx.Info("shutting down server...")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logx.Error("server forced to shutdown", zap.Error(err))
	}
	container.Scheduler.Stop()
	container.ShareCardWorker.Wait()

	logx.Info("server exited")
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  fe.Code,
		})
	}

	var e *errx.Error
	if errors.As(err, &e) {
		if e.HTTPStatus >= fiber.StatusInternalServerError {
			logx.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	logx.Error("internal server error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
