package sharecardsrv_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/applymint/pkg/errx"
	"github.com/Abraxas-365/applymint/pkg/fsx"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/recruitment/company"
	"github.com/Abraxas-365/applymint/recruitment/domain"
	"github.com/Abraxas-365/applymint/recruitment/job"
	"github.com/Abraxas-365/applymint/recruitment/sharecard"
	"github.com/Abraxas-365/applymint/recruitment/sharecard/sharecardinfra"
	"github.com/Abraxas-365/applymint/recruitment/sharecard/sharecardsrv"
)

type fakeJobs struct {
	mu     sync.Mutex
	jobs   map[kernel.JobID]*job.JobResponse
	images map[kernel.JobID][2]string
}

func newFakeJobs() *fakeJobs {
	salaryMin := int64(90000)
	return &fakeJobs{
		jobs: map[kernel.JobID]*job.JobResponse{
			"j1": {
				ID:              "j1",
				Title:           "Senior Backend Engineer",
				Company:         &company.CompanySummary{ID: "c1", Name: "Acme Corp"},
				LocationType:    job.LocationRemote,
				JobType:         job.JobTypeFullTime,
				ExperienceLevel: job.ExperienceSenior,
				SalaryMin:       &salaryMin,
				SalaryCurrency:  "USD",
				ApplicationLink: "https://acme.example/apply",
				Domains:         []domain.DomainSummary{{ID: "d1", Name: "Technology"}},
			},
		},
		images: map[kernel.JobID][2]string{},
	}
}

func (f *fakeJobs) GetJobByID(_ context.Context, id kernel.JobID) (*job.JobResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[id]
	if !ok {
		return nil, nil
	}
	c := *j
	return &c, nil
}

func (f *fakeJobs) SetShareImage(_ context.Context, id kernel.JobID, imageURL, qrURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.images[id] = [2]string{imageURL, qrURL}
	return nil
}

func (f *fakeJobs) image(id kernel.JobID) ([2]string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	urls, ok := f.images[id]
	return urls, ok
}

type failingStore struct{}

func (failingStore) Upload(context.Context, string, []byte, string) (string, error) {
	return "", errors.New("s3 unavailable")
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// ── Preview / Enqueue ──────────────────────────────────────────────────────

func TestPreview(t *testing.T) {
	svc := sharecardsrv.NewService(newFakeJobs(), fsx.NewMemoryFileSystem("https://cdn.example"), sharecardinfra.NewMemoryQueue(1), "")
	data, err := svc.Preview(context.Background(), "j1", sharecard.Options{Template: "tech", FontScale: 120})
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != sharecard.CardWidth {
		t.Errorf("width = %d", img.Bounds().Dx())
	}

	if _, err := svc.Preview(context.Background(), "missing", sharecard.Options{}); !errx.IsCode(err, job.CodeJobNotFound) {
		t.Errorf("unknown job: err = %v", err)
	}
}

func TestEnqueue_NormalizesOptions(t *testing.T) {
	queue := sharecardinfra.NewMemoryQueue(4)
	svc := sharecardsrv.NewService(newFakeJobs(), fsx.NewMemoryFileSystem("https://cdn.example"), queue, "")
	ctx := context.Background()

	task, err := svc.Enqueue(ctx, "j1", sharecard.Options{Template: "neon", FontScale: 999})
	if err != nil {
		t.Fatal(err)
	}
	if task.Options.Template != "standard" || task.Options.FontScale != sharecard.MaxFontScale || task.Attempt != 1 {
		t.Errorf("task = %+v", task)
	}

	got, err := queue.Dequeue(ctx, time.Second)
	if err != nil || got == nil || got.ID != task.ID {
		t.Fatalf("dequeued %+v, %v", got, err)
	}

	if _, err := svc.Enqueue(ctx, "missing", sharecard.Options{}); !errx.IsCode(err, job.CodeJobNotFound) {
		t.Errorf("unknown job: err = %v", err)
	}
}

// ── Process / Handle ───────────────────────────────────────────────────────

func TestProcess_UploadsAndStoresURLs(t *testing.T) {
	jobs := newFakeJobs()
	store := fsx.NewMemoryFileSystem("https://cdn.example")
	svc := sharecardsrv.NewService(jobs, store, sharecardinfra.NewMemoryQueue(1), "https://applymint.example")

	task := &sharecard.Task{ID: "t1", JobID: "j1", Attempt: 1}
	if err := svc.Process(context.Background(), task); err != nil {
		t.Fatal(err)
	}

	urls, ok := jobs.image("j1")
	if !ok {
		t.Fatal("share image not stored on job")
	}
	if urls[0] != "https://cdn.example/share-images/j1/t1.png" || urls[1] != "https://cdn.example/qr-codes/j1.png" {
		t.Errorf("urls = %v", urls)
	}
	if ct, _ := store.ContentType("share-images/j1/t1.png"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
}

func TestApplyURL(t *testing.T) {
	j := &job.JobResponse{ID: "j1", ApplicationLink: "https://acme.example/apply"}
	tracked := sharecardsrv.NewService(nil, nil, nil, "https://applymint.example/")
	if got := tracked.ApplyURL(j); got != "https://applymint.example/api/jobs/j1/apply" {
		t.Errorf("tracked = %q", got)
	}
	direct := sharecardsrv.NewService(nil, nil, nil, "")
	if got := direct.ApplyURL(j); got != j.ApplicationLink {
		t.Errorf("direct = %q", got)
	}
}

func TestHandle_RetriesThenDrops(t *testing.T) {
	queue := sharecardinfra.NewMemoryQueue(4)
	svc := sharecardsrv.NewService(newFakeJobs(), failingStore{}, queue, "")
	ctx := context.Background()

	svc.Handle(ctx, &sharecard.Task{ID: "t1", JobID: "j1", Attempt: 1})
	if queue.Delayed() != 1 {
		t.Fatalf("delayed = %d, want 1", queue.Delayed())
	}

	svc.Handle(ctx, &sharecard.Task{ID: "t2", JobID: "j1", Attempt: sharecardsrv.MaxAttempts})
	if queue.Delayed() != 1 {
		t.Errorf("task past max attempts was retried")
	}

	svc.Handle(ctx, &sharecard.Task{ID: "t3", JobID: "missing", Attempt: 1})
	if queue.Delayed() != 1 {
		t.Errorf("task for a missing job was retried")
	}
}

func TestMemoryQueue_DelayedBecomeReady(t *testing.T) {
	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	queue := sharecardinfra.NewMemoryQueue(4).WithClock(func() time.Time { return clock })
	ctx := context.Background()

	if err := queue.EnqueueDelayed(ctx, &sharecard.Task{ID: "t1", Attempt: 2}, time.Minute); err != nil {
		t.Fatal(err)
	}
	if n, _ := queue.MoveDelayedToReady(ctx); n != 0 {
		t.Errorf("moved %d before due", n)
	}
	clock = clock.Add(2 * time.Minute)
	if n, _ := queue.MoveDelayedToReady(ctx); n != 1 {
		t.Errorf("moved %d after due, want 1", n)
	}
	task, _ := queue.Dequeue(ctx, time.Second)
	if task == nil || task.ID != "t1" || task.Attempt != 2 {
		t.Errorf("dequeued %+v", task)
	}
}

// ── Worker ─────────────────────────────────────────────────────────────────

func TestWorker_PublishesQueuedCards(t *testing.T) {
	jobs := newFakeJobs()
	queue := sharecardinfra.NewMemoryQueue(4)
	svc := sharecardsrv.NewService(jobs, fsx.NewMemoryFileSystem("https://cdn.example"), queue, "")

	ctx, cancel := context.WithCancel(context.Background())
	w := sharecardsrv.NewWorker(svc, queue, 2).WithIntervals(50*time.Millisecond, 50*time.Millisecond)
	w.Start(ctx)

	if _, err := svc.Enqueue(ctx, "j1", sharecard.Options{Template: "startup"}); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(10 * time.Second)
	for {
		if _, ok := jobs.image("j1"); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("worker did not publish the card")
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	w.Wait()
}

// ── UploadImage ────────────────────────────────────────────────────────────

func TestUploadImage(t *testing.T) {
	store := fsx.NewMemoryFileSystem("https://cdn.example")
	svc := sharecardsrv.NewService(newFakeJobs(), store, sharecardinfra.NewMemoryQueue(1), "")
	ctx := context.Background()

	url, err := svc.UploadImage(ctx, "logo.PNG", "image/png", pngBytes(t))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(url, "https://cdn.example/images/") || !strings.HasSuffix(url, ".png") {
		t.Errorf("url = %q", url)
	}

	cases := []struct {
		name        string
		contentType string
		data        []byte
		code        errx.Code
	}{
		{"declared text", "text/plain", pngBytes(t), sharecard.CodeInvalidFileType},
		{"disguised text", "image/png", []byte("definitely not an image"), sharecard.CodeInvalidFileType},
		{"too large", "image/png", make([]byte, sharecardsrv.MaxUploadSize+1), sharecard.CodeFileSizeTooLarge},
		{"empty", "image/png", nil, sharecard.CodeInvalidRequest},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.UploadImage(ctx, "file.png", c.contentType, c.data)
			if !errx.IsCode(err, c.code) {
				t.Errorf("err = %v, want %s", err, c.code)
			}
		})
	}
}
