package companysrv_test

import (
	"context"
	"testing"

	"github.com/Abraxas-365/applymint/pkg/errx"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/company"
	"github.com/Abraxas-365/applymint/recruitment/company/companyinfra"
	"github.com/Abraxas-365/applymint/recruitment/company/companysrv"
)

type jobCounts map[kernel.CompanyID]int

func (j jobCounts) CountByCompany(_ context.Context, id kernel.CompanyID) (int, error) {
	return j[id], nil
}

func strPtr(s string) *string { return &s }

func newService(counts jobCounts) *companysrv.CompanyService {
	return companysrv.NewCompanyService(companyinfra.NewMemoryCompanyRepository(), counts)
}

// ── Create ──────────────────────────────────────────────────────────────────

func TestCreateCompany(t *testing.T) {
	svc := newService(jobCounts{})
	ctx := context.Background()

	c, err := svc.CreateCompany(ctx, company.CreateCompanyRequest{
		Name:     "  Acme  ",
		Website:  strPtr("https://acme.example"),
		Industry: []string{"Tech", " ", "Retail"},
		Size:     strPtr("medium"),
		Location: strPtr(""),
	})
	if err != nil {
		t.Fatalf("CreateCompany: %v", err)
	}
	if c.Name != "Acme" {
		t.Errorf("name not trimmed: %q", c.Name)
	}
	if len(c.Industry) != 2 {
		t.Errorf("blank industries should be dropped, got %v", c.Industry)
	}
	if c.Size == nil || *c.Size != company.CompanySizeMedium {
		t.Errorf("size not canonicalized: %v", c.Size)
	}
	if c.Location != nil {
		t.Errorf("empty location should be nil, got %q", *c.Location)
	}

	_, err = svc.CreateCompany(ctx, company.CreateCompanyRequest{Name: "ACME"})
	if !errx.IsCode(err, company.CodeCompanyAlreadyExists) {
		t.Errorf("expected ALREADY_EXISTS, got %v", err)
	}
}

func TestCreateCompany_Validation(t *testing.T) {
	svc := newService(jobCounts{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  company.CreateCompanyRequest
		code errx.Code
	}{
		{"missing name", company.CreateCompanyRequest{}, company.CodeValidationFailed},
		{"bad website", company.CreateCompanyRequest{Name: "Acme", Website: strPtr("nope")}, company.CodeValidationFailed},
		{"unknown size", company.CreateCompanyRequest{Name: "Acme", Size: strPtr("Huge")}, company.CodeInvalidCompanySize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCompany(ctx, tt.req)
			if !errx.IsCode(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

// ── Update / Delete ─────────────────────────────────────────────────────────

func TestUpdateCompany_Partial(t *testing.T) {
	svc := newService(jobCounts{})
	ctx := context.Background()

	c, _ := svc.CreateCompany(ctx, company.CreateCompanyRequest{Name: "Acme", Location: strPtr("Lima")})

	updated, err := svc.UpdateCompany(ctx, c.ID, company.UpdateCompanyRequest{Location: strPtr("")})
	if err != nil {
		t.Fatalf("UpdateCompany: %v", err)
	}
	if updated.Name != "Acme" {
		t.Errorf("name should be untouched, got %q", updated.Name)
	}
	if updated.Location != nil {
		t.Error("empty string should clear location")
	}

	_, err = svc.UpdateCompany(ctx, "missing", company.UpdateCompanyRequest{})
	if !errx.IsType(err, errx.TypeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestDeleteCompany_RefusedWhileJobsExist(t *testing.T) {
	counts := jobCounts{}
	svc := newService(counts)
	ctx := context.Background()

	c, _ := svc.CreateCompany(ctx, company.CreateCompanyRequest{Name: "Acme"})
	counts[c.ID] = 2

	if err := svc.DeleteCompany(ctx, c.ID); !errx.IsCode(err, company.CodeCompanyHasJobs) {
		t.Fatalf("expected HAS_JOBS, got %v", err)
	}

	counts[c.ID] = 0
	if err := svc.DeleteCompany(ctx, c.ID); err != nil {
		t.Fatalf("DeleteCompany: %v", err)
	}
	if _, err := svc.GetCompany(ctx, c.ID); !errx.IsType(err, errx.TypeNotFound) {
		t.Errorf("expected company gone, got %v", err)
	}
}

// ── List ────────────────────────────────────────────────────────────────────

func TestListCompanies_OrderedByName(t *testing.T) {
	svc := newService(jobCounts{})
	ctx := context.Background()

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		if _, err := svc.CreateCompany(ctx, company.CreateCompanyRequest{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	page, err := svc.ListCompanies(ctx, kernel.PaginationOptions{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 3 || page.Pages != 2 {
		t.Errorf("total/pages = %d/%d, want 3/2", page.Total, page.Pages)
	}
	if len(page.Items) != 2 || page.Items[0].Name != "Alpha" || page.Items[1].Name != "Mid" {
		t.Errorf("unexpected first page: %+v", page.Items)
	}
}
