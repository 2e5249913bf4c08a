package domainsrv_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Abraxas-365/applymint/pkg/cachex"
	"github.com/Abraxas-365/applymint/pkg/errx"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/domain"
	"github.com/Abraxas-365/applymint/recruitment/domain/domaininfra"
	"github.com/Abraxas-365/applymint/recruitment/domain/domainsrv"
)

func setup(t *testing.T) (*domainsrv.DomainService, *domaininfra.MemoryDomainRepository, *cachex.MemoryCache) {
	t.Helper()
	repo := domaininfra.NewMemoryDomainRepository()
	cache := cachex.NewMemoryCache()
	return domainsrv.NewDomainService(repo, cache, 0), repo, cache
}

func mustCreate(t *testing.T, svc *domainsrv.DomainService, name string) *domain.Domain {
	t.Helper()
	d, err := svc.CreateDomain(context.Background(), domain.CreateDomainRequest{Name: name})
	if err != nil {
		t.Fatalf("CreateDomain(%q): %v", name, err)
	}
	return d
}

// ── Taxonomy ────────────────────────────────────────────────────────────────

func TestListDomains_WithSubdomainsOrderedByName(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	tech := mustCreate(t, svc, "Technology")
	mustCreate(t, svc, "Finance")

	for _, name := range []string{"Web Development", "Data Science"} {
		if _, err := svc.CreateSubdomain(ctx, tech.ID, domain.CreateSubdomainRequest{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	domains, err := svc.ListDomains(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(domains) != 2 || domains[0].Name != "Finance" || domains[1].Name != "Technology" {
		t.Fatalf("unexpected order: %+v", domains)
	}
	subs := domains[1].Subdomains
	if len(subs) != 2 || subs[0].Name != "Data Science" {
		t.Errorf("subdomains not attached in name order: %+v", subs)
	}
	if domains[0].Subdomains == nil {
		t.Error("subdomains should be an empty slice, not nil")
	}
}

func TestCreateDomain_DuplicateName(t *testing.T) {
	svc, _, _ := setup(t)
	mustCreate(t, svc, "Technology")

	_, err := svc.CreateDomain(context.Background(), domain.CreateDomainRequest{Name: "technology"})
	if !errx.IsCode(err, domain.CodeDomainAlreadyExists) {
		t.Errorf("expected ALREADY_EXISTS, got %v", err)
	}
}

func TestCreateSubdomain_UnknownDomain(t *testing.T) {
	svc, _, _ := setup(t)

	_, err := svc.CreateSubdomain(context.Background(), "nope", domain.CreateSubdomainRequest{Name: "Web"})
	if !errx.IsCode(err, domain.CodeDomainNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestGetDomainByName(t *testing.T) {
	svc, _, _ := setup(t)
	d := mustCreate(t, svc, "Technology")

	got, err := svc.GetDomainByName(context.Background(), " Technology ")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != d.ID {
		t.Errorf("got %s, want %s", got.ID, d.ID)
	}
}

// ── Popular ─────────────────────────────────────────────────────────────────

func TestPopularDomains_RankedAndCached(t *testing.T) {
	svc, repo, _ := setup(t)
	ctx := context.Background()

	tech := mustCreate(t, svc, "Technology")
	fin := mustCreate(t, svc, "Finance")
	mustCreate(t, svc, "Legal")

	calls := 0
	repo.SetActiveJobCounter(func(context.Context) (map[kernel.DomainID]int, error) {
		calls++
		return map[kernel.DomainID]int{tech.ID: 3, fin.ID: 7}, nil
	})

	popular, err := svc.PopularDomains(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(popular) != 2 {
		t.Fatalf("domains without active jobs must be skipped, got %d", len(popular))
	}
	if popular[0].Name != "Finance" || popular[0].ActiveJobs != 7 {
		t.Errorf("unexpected first: %+v", popular[0])
	}

	if _, err := svc.PopularDomains(ctx, 0); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("second call should be served from cache, loaded %d times", calls)
	}

	// writes invalidate the cached ranking
	mustCreate(t, svc, "Health")
	if _, err := svc.PopularDomains(ctx, 0); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("expected reload after invalidation, loaded %d times", calls)
	}
}

func TestPopularDomains_StorageErrorPropagates(t *testing.T) {
	svc, repo, _ := setup(t)
	boom := errors.New("db down")
	repo.SetActiveJobCounter(func(context.Context) (map[kernel.DomainID]int, error) {
		return nil, boom
	})

	if _, err := svc.PopularDomains(context.Background(), 5); !errors.Is(err, boom) {
		t.Errorf("expected storage error, got %v", err)
	}
}
