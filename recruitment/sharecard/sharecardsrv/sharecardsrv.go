package sharecardsrv

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/Abraxas-365/applymint/pkg/errx"
	"github.com/Abraxas-365/applymint/pkg/fsx"
	"github.com/Abraxas-365/applymint/pkg/kernel"
	"github.com/Abraxas-365/applymint/pkg/logx"
	"github.com/Abraxas-365/applymint/recruitment/job"
	"github.com/Abraxas-365/applymint/recruitment/sharecard"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// MaxAttempts bounds how often a failing task is retried
	MaxAttempts = 3
	// RetryDelay is multiplied by the attempt number
	RetryDelay = 30 * time.Second
	// MaxUploadSize is the largest accepted image upload
	MaxUploadSize = 10 << 20
)

// JobSource is the part of the job service share cards depend on
type JobSource interface {
	GetJobByID(ctx context.Context, jobID kernel.JobID) (*job.JobResponse, error)
	SetShareImage(ctx context.Context, jobID kernel.JobID, imageURL, qrCodeURL string) error
}

// Service renders share cards and publishes them to blob storage
type Service struct {
	jobs          JobSource
	store         fsx.Uploader
	queue         sharecard.Queue
	renderer      *sharecard.Renderer
	publicBaseURL string
	now           func() time.Time
}

func NewService(jobs JobSource, store fsx.Uploader, queue sharecard.Queue, publicBaseURL string) *Service {
	return &Service{
		jobs:          jobs,
		store:         store,
		queue:         queue,
		renderer:      sharecard.NewRenderer(),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
	}
}

// ApplyURL is what the QR code on a card points to: the tracked apply
// redirect when a public base URL is configured, else the job's own link
func (s *Service) ApplyURL(j *job.JobResponse) string {
	if s.publicBaseURL == "" {
		return j.ApplicationLink
	}
	return fmt.Sprintf("%s/api/jobs/%s/apply", s.publicBaseURL, j.ID)
}

func (s *Service) loadJob(ctx context.Context, jobID kernel.JobID) (*job.JobResponse, error) {
	j, err := s.jobs.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, job.ErrJobNotFound().WithDetail("job_id", jobID.String())
	}
	return j, nil
}

// Preview renders a job's card without storing it
func (s *Service) Preview(ctx context.Context, jobID kernel.JobID, opts sharecard.Options) ([]byte, error) {
	j, err := s.loadJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	tpl, scale := opts.Normalize()
	return s.renderer.Render(sharecard.CardFromJob(j, s.ApplyURL(j)), tpl, scale)
}

// Enqueue queues rendering and publishing of a job's card
func (s *Service) Enqueue(ctx context.Context, jobID kernel.JobID, opts sharecard.Options) (*sharecard.Task, error) {
	if _, err := s.loadJob(ctx, jobID); err != nil {
		return nil, err
	}

	tpl, scale := opts.Normalize()
	task := &sharecard.Task{
		ID:          uuid.NewString(),
		JobID:       jobID,
		Options:     sharecard.Options{Template: tpl.ID, FontScale: scale},
		Attempt:     1,
		RequestedAt: s.now(),
	}
	if err := s.queue.Enqueue(ctx, task); err != nil {
		return nil, sharecard.ErrQueueFailed(err).WithDetail("job_id", jobID.String())
	}

	logx.Info("share card queued",
		zap.String("task_id", task.ID),
		zap.String("job_id", jobID.String()),
		zap.String("template", tpl.ID),
	)
	return task, nil
}

// Process renders the card and QR code, uploads both and stores their
// URLs on the job
func (s *Service) Process(ctx context.Context, task *sharecard.Task) error {
	j, err := s.loadJob(ctx, task.JobID)
	if err != nil {
		return err
	}

	applyURL := s.ApplyURL(j)
	tpl, scale := task.Options.Normalize()
	card, err := s.renderer.Render(sharecard.CardFromJob(j, applyURL), tpl, scale)
	if err != nil {
		return err
	}
	qr, err := sharecard.QRCodePNG(applyURL)
	if err != nil {
		return err
	}

	imageURL, err := s.store.Upload(ctx, path.Join("share-images", j.ID.String(), task.ID+".png"), card, "image/png")
	if err != nil {
		return sharecard.ErrUploadFailed(err)
	}
	qrURL, err := s.store.Upload(ctx, path.Join("qr-codes", j.ID.String()+".png"), qr, "image/png")
	if err != nil {
		return sharecard.ErrUploadFailed(err)
	}

	return s.jobs.SetShareImage(ctx, j.ID, imageURL, qrURL)
}

// Handle processes a dequeued task and schedules a retry on failure. A task
// whose job no longer exists is dropped.
func (s *Service) Handle(ctx context.Context, task *sharecard.Task) {
	err := s.Process(ctx, task)
	if err == nil {
		logx.Info("share card published", zap.String("task_id", task.ID), zap.String("job_id", task.JobID.String()))
		return
	}

	fields := []zap.Field{
		zap.String("task_id", task.ID),
		zap.String("job_id", task.JobID.String()),
		zap.Int("attempt", task.Attempt),
		zap.Error(err),
	}
	if errx.IsCode(err, job.CodeJobNotFound) || task.Attempt >= MaxAttempts {
		logx.Error("share card task dropped", fields...)
		return
	}

	retry := *task
	retry.Attempt++
	if qerr := s.queue.EnqueueDelayed(ctx, &retry, RetryDelay*time.Duration(task.Attempt)); qerr != nil {
		logx.Error("share card retry could not be scheduled", append(fields, zap.NamedError("queue_error", qerr))...)
		return
	}
	logx.Warn("share card task failed, retry scheduled", fields...)
}

// UploadImage stores an uploaded image and returns its public URL
func (s *Service) UploadImage(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if len(data) > MaxUploadSize {
		return "", sharecard.ErrFileSizeTooLarge().
			WithDetail("size", len(data)).
			WithDetail("max_size", MaxUploadSize)
	}
	if len(data) == 0 {
		return "", sharecard.ErrInvalidRequest().WithDetail("file", "empty")
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return "", sharecard.ErrInvalidFileType().WithDetail("content_type", contentType)
	}
	if sniffed := http.DetectContentType(data); !strings.HasPrefix(sniffed, "image/") {
		return "", sharecard.ErrInvalidFileType().WithDetail("detected_type", sniffed)
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
			ext = exts[0]
		}
	}

	url, err := s.store.Upload(ctx, path.Join("images", uuid.NewString()+ext), data, mediaType)
	if err != nil {
		return "", sharecard.ErrUploadFailed(err)
	}
	logx.Info("image uploaded", zap.String("url", url), zap.Int("size", len(data)))
	return url, nil
}
