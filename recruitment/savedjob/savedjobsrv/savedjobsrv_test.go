package savedjobsrv_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Abraxas-365/applymint/pkg/errx"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/job"
	"github.com/Abraxas-365/applymint/recruitment/savedjob"
	"github.com/Abraxas-365/applymint/recruitment/savedjob/savedjobinfra"
	"github.com/Abraxas-365/applymint/recruitment/savedjob/savedjobsrv"
)

type fakeJobs map[kernel.JobID]string

func (f fakeJobs) GetJobByID(_ context.Context, id kernel.JobID) (*job.JobResponse, error) {
	title, ok := f[id]
	if !ok {
		return nil, nil
	}
	return &job.JobResponse{ID: id, Title: title}, nil
}

func (f fakeJobs) GetJobsByIDs(_ context.Context, ids []kernel.JobID) ([]job.JobResponse, error) {
	out := []job.JobResponse{}
	for _, id := range ids {
		if title, ok := f[id]; ok {
			out = append(out, job.JobResponse{ID: id, Title: title})
		}
	}
	return out, nil
}

func setup() (*savedjobsrv.SavedJobService, fakeJobs) {
	jobs := fakeJobs{"j1": "Backend", "j2": "Frontend", "j3": "Data"}
	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := savedjobsrv.NewSavedJobService(savedjobinfra.NewMemorySavedJobRepository(), jobs).
		WithClock(func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		})
	return svc, jobs
}

func TestSave_Idempotent(t *testing.T) {
	svc, _ := setup()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Save(ctx, "u1", "j1"); err != nil {
			t.Fatal(err)
		}
	}
	page, err := svc.List(ctx, "u1", kernel.PaginationOptions{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 {
		t.Errorf("total = %d, want 1", page.Total)
	}
}

func TestSave_UnknownJob(t *testing.T) {
	svc, _ := setup()
	_, err := svc.Save(context.Background(), "u1", "missing")
	if !errx.IsCode(err, job.CodeJobNotFound) {
		t.Errorf("err = %v, want JOB NOT_FOUND", err)
	}
}

func TestSignedInOnly(t *testing.T) {
	svc, _ := setup()
	ctx := context.Background()
	anon := kernel.AnonymousUser

	_, saveErr := svc.Save(ctx, anon, "j1")
	_, isSavedErr := svc.IsSaved(ctx, anon, "j1")
	_, listErr := svc.List(ctx, anon, kernel.PaginationOptions{Page: 1, PageSize: 10})
	for name, err := range map[string]error{
		"Save":    saveErr,
		"Unsave":  svc.Unsave(ctx, anon, "j1"),
		"IsSaved": isSavedErr,
		"List":    listErr,
	} {
		if !errx.IsCode(err, savedjob.CodeUserRequired) {
			t.Errorf("%s: err = %v", name, err)
		}
	}
}

func TestUnsave_AndIsSaved(t *testing.T) {
	svc, _ := setup()
	ctx := context.Background()

	if _, err := svc.Save(ctx, "u1", "j1"); err != nil {
		t.Fatal(err)
	}
	if status, _ := svc.IsSaved(ctx, "u1", "j1"); !status.Saved {
		t.Error("IsSaved = false after Save")
	}
	if status, _ := svc.IsSaved(ctx, "u2", "j1"); status.Saved {
		t.Error("bookmark leaked to another user")
	}

	for i := 0; i < 2; i++ {
		if err := svc.Unsave(ctx, "u1", "j1"); err != nil {
			t.Fatalf("Unsave #%d: %v", i+1, err)
		}
	}
	if status, _ := svc.IsSaved(ctx, "u1", "j1"); status.Saved {
		t.Error("IsSaved = true after Unsave")
	}
}

func TestList_NewestFirstWithPaging(t *testing.T) {
	svc, jobs := setup()
	ctx := context.Background()

	for _, id := range []kernel.JobID{"j1", "j2", "j3"} {
		if _, err := svc.Save(ctx, "u1", id); err != nil {
			t.Fatal(err)
		}
	}
	delete(jobs, "j2")

	first, err := svc.List(ctx, "u1", kernel.PaginationOptions{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.List(ctx, "u1", kernel.PaginationOptions{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, item := range append(first.Items, second.Items...) {
		got = append(got, fmt.Sprintf("%s:%v", item.JobID, item.Job != nil))
	}
	if fmt.Sprint(got) != "[j3:true j2:false j1:true]" {
		t.Errorf("items = %v", got)
	}
	if first.Total != 3 || first.Pages != 2 {
		t.Errorf("page meta = %+v", first.Page)
	}
}
