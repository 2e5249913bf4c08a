package applicationapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abraxas-365/applymint/pkg/errx"
	"github.com/Abraxas-365/applymint/pkg/iam/auth"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/application/applicationapi"
	"github.com/Abraxas-365/applymint/recruitment/application/applicationinfra"
	"github.com/Abraxas-365/applymint/recruitment/application/applicationsrv"
	"github.com/Abraxas-365/applymint/recruitment/job"
	"github.com/gofiber/fiber/v2"
)

type linkOnlyJobs map[kernel.JobID]string

func (linkOnlyJobs) IncrementClick(context.Context, kernel.JobID) {}

func (l linkOnlyJobs) ApplicationLink(_ context.Context, id kernel.JobID) (string, error) {
	link, ok := l[id]
	if !ok {
		return "", job.ErrJobNotFound()
	}
	return link, nil
}

func (linkOnlyJobs) GetJobsByIDs(context.Context, []kernel.JobID) ([]job.JobResponse, error) {
	return []job.JobResponse{}, nil
}

func newApp(t *testing.T) (*fiber.App, *applicationinfra.MemoryApplicationRepository, *auth.JWTService) {
	t.Helper()
	repo := applicationinfra.NewMemoryApplicationRepository()
	svc := applicationsrv.NewApplicationService(repo, linkOnlyJobs{"j1": "https://acme.example/apply"})
	tokens := auth.NewJWTService("test-secret", time.Hour, "applymint")
	middleware := auth.NewMiddleware(tokens, nil)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*errx.Error); ok {
				return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
			}
			return c.SendStatus(http.StatusInternalServerError)
		},
		Immutable: true,
	})
	app.Use(middleware.Identify())
	applicationapi.RegisterRoutes(app, applicationapi.NewHandlers(svc), middleware)
	return app, repo, tokens
}

func TestApply_Redirects(t *testing.T) {
	app, repo, tokens := newApp(t)
	token, err := tokens.GenerateAccessToken("u1", "user")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name, path, token, location string
		recorded                    int64
	}{
		{"anonymous", "/api/jobs/j1/apply", "", "https://acme.example/apply", 0},
		{"signed in", "/api/jobs/j1/apply", token, "https://acme.example/apply", 1},
		{"unknown job", "/api/jobs/nope/apply", token, applicationsrv.FallbackRedirect, 1},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, c.path, nil)
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusFound {
			t.Errorf("%s: status = %d, want 302", c.name, resp.StatusCode)
		}
		if got := resp.Header.Get("Location"); got != c.location {
			t.Errorf("%s: Location = %q, want %q", c.name, got, c.location)
		}
		if n, _ := repo.CountByJob(context.Background(), "j1"); n != c.recorded {
			t.Errorf("%s: recorded = %d, want %d", c.name, n, c.recorded)
		}
	}
}

func TestMyApplications_RequiresUser(t *testing.T) {
	app, _, _ := newApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/me/applications", nil))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestApply_StoredJobIDSurvivesLaterRequests(t *testing.T) {
	app, repo, tokens := newApp(t)
	token, err := tokens.GenerateAccessToken("u1", "user")
	if err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"/api/jobs/j1/apply", "/api/jobs/xx/apply", "/api/jobs/nope/apply"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}

	page, err := repo.ListByUser(context.Background(), "u1", kernel.PaginationOptions{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 1 || page.Items[0].JobID != "j1" {
		t.Fatalf("stored applications = %+v, want one for j1", page.Items)
	}
	if n, _ := repo.CountByJob(context.Background(), "j1"); n != 1 {
		t.Errorf("count(j1) = %d, want 1", n)
	}
}
