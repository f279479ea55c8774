package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/staffcal/staffcal-api/internal/calendar"
	"github.com/staffcal/staffcal-api/internal/models"
	appErrors "github.com/staffcal/staffcal-api/pkg/errors"
	"github.com/staffcal/staffcal-api/pkg/export"
	"github.com/staffcal/staffcal-api/pkg/jobs"
	"github.com/staffcal/staffcal-api/pkg/storage"
)

// ExportFormat names a supported export rendering.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportStatus tracks an export job through its lifecycle.
type ExportStatus string

const (
	ExportStatusPending   ExportStatus = "pending"
	ExportStatusCompleted ExportStatus = "completed"
	ExportStatusFailed    ExportStatus = "failed"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportWeekRequest asks for a rendered week schedule. The week containing
// WeekOf is exported in full, Monday through Sunday.
type ExportWeekRequest struct {
	WeekOf   models.Day `json:"week_of"`
	RoleID   string     `json:"role_id"`
	PersonID string     `json:"person_id"`
	Format   string     `json:"format" validate:"required,oneof=csv pdf"`
}

// ExportResult carries the stored file metadata of a finished job.
type ExportResult struct {
	RelativePath string    `json:"relative_path"`
	Token        string    `json:"-"`
	URL          string    `json:"url"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ExportJob is the polled view of a queued export.
type ExportJob struct {
	ID        string            `json:"id"`
	Format    ExportFormat      `json:"format"`
	Status    ExportStatus      `json:"status"`
	Request   ExportWeekRequest `json:"request"`
	Result    *ExportResult     `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
	Workers   int
}

// ExportService renders week schedules to CSV or PDF in the background and
// serves them through signed download URLs.
type ExportService struct {
	gateway calendarGateway
	storage fileStorage
	signer  *storage.SignedURLSigner
	csv     csvRenderer
	pdf     pdfRenderer
	queue   *jobs.Queue
	logger  *zap.Logger
	cfg     ExportConfig

	mu       sync.RWMutex
	registry map[string]*ExportJob
}

// NewExportService constructs an ExportService. Start must be called before
// jobs can be enqueued.
func NewExportService(gw calendarGateway, files fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	s := &ExportService{
		gateway:  gw,
		storage:  files,
		signer:   signer,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
		cfg:      cfg,
		registry: make(map[string]*ExportJob),
	}
	s.queue = jobs.NewQueue("schedule-exports", s.handleJob, jobs.QueueConfig{
		Workers: cfg.Workers,
		Logger:  logger,
	})
	return s
}

// Start launches the export workers.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the export workers.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// Enqueue validates the request and queues the export for rendering.
func (s *ExportService) Enqueue(req ExportWeekRequest) (*ExportJob, error) {
	if req.WeekOf.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "week_of is required")
	}
	format := ExportFormat(strings.ToLower(req.Format))
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	now := time.Now().UTC()
	job := &ExportJob{
		ID:        uuid.NewString(),
		Format:    format,
		Status:    ExportStatusPending,
		Request:   req,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.mu.Lock()
	s.registry[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: string(format), Payload: req}); err != nil {
		s.mu.Lock()
		delete(s.registry, job.ID)
		s.mu.Unlock()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue export")
	}
	return s.snapshot(job.ID), nil
}

// Get returns the current state of a job.
func (s *ExportService) Get(jobID string) (*ExportJob, error) {
	job := s.snapshot(jobID)
	if job == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	return job, nil
}

// ParseToken validates a download token.
func (s *ExportService) ParseToken(token string) (jobID, relPath string, err error) {
	jobID, relPath, _, err = s.signer.Parse(token, false)
	if err != nil {
		return "", "", appErrors.Clone(appErrors.ErrNotFound, "invalid or expired download token")
	}
	return jobID, relPath, nil
}

// Open returns a handle to a stored export file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Cleanup removes stored files older than the configured TTL.
func (s *ExportService) Cleanup() ([]string, error) {
	return s.storage.CleanupOlderThan(s.cfg.ResultTTL)
}

func (s *ExportService) handleJob(ctx context.Context, job jobs.Job) error {
	req, ok := job.Payload.(ExportWeekRequest)
	if !ok {
		s.fail(job.ID, "malformed export payload")
		return nil
	}

	result, err := s.generate(ctx, job.ID, req)
	if err != nil {
		s.fail(job.ID, err.Error())
		return err
	}

	s.mu.Lock()
	if j, found := s.registry[job.ID]; found {
		j.Status = ExportStatusCompleted
		j.Result = result
		j.UpdatedAt = time.Now().UTC()
	}
	s.mu.Unlock()
	return nil
}

func (s *ExportService) generate(ctx context.Context, jobID string, req ExportWeekRequest) (*ExportResult, error) {
	dataset, title, err := s.buildWeekDataset(ctx, req)
	if err != nil {
		return nil, err
	}

	var payload []byte
	format := ExportFormat(strings.ToLower(req.Format))
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset, title)
	default:
		err = fmt.Errorf("unsupported format %s", req.Format)
	}
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("schedule_%s_%s.%s", req.WeekOf.WeekStart(), time.Now().UTC().Format("20060102_150405"), format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(jobID, relPath)
	if err != nil {
		return nil, err
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/export/%s", prefix, token),
		ExpiresAt:    expiresAt,
	}, nil
}

var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// buildWeekDataset expands the Monday-first week containing WeekOf into one
// row per availability occurrence, with names denormalized.
func (s *ExportService) buildWeekDataset(ctx context.Context, req ExportWeekRequest) (export.Dataset, string, error) {
	weekStart := req.WeekOf.WeekStart()
	weekEnd := req.WeekOf.WeekEnd()

	rules, err := s.gateway.GetAvailabilityHours(ctx, models.HoursFilter{
		RoleID:    req.RoleID,
		PersonID:  req.PersonID,
		StartDate: &weekStart,
		EndDate:   &weekEnd,
	})
	if err != nil {
		return export.Dataset{}, "", err
	}
	people, err := s.gateway.GetPeople(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}
	roles, err := s.gateway.GetRoles(ctx)
	if err != nil {
		return export.Dataset{}, "", err
	}
	personNames := make(map[string]string, len(people))
	for _, p := range people {
		personNames[p.ID] = p.Name
	}
	roleNames := make(map[string]string, len(roles))
	for _, r := range roles {
		roleNames[r.ID] = r.Name
	}

	instances := calendar.ExpandAll(rules, models.EventTypeAvailability, weekStart, weekEnd)
	rows := make([]map[string]string, 0, len(instances))
	for _, instance := range instances {
		person := ""
		if instance.PersonID != nil {
			person = personNames[*instance.PersonID]
		}
		rows = append(rows, map[string]string{
			"Date":   instance.Date.String(),
			"Day":    weekdayNames[instance.Date.Weekday()],
			"Person": person,
			"Role":   roleNames[instance.RoleID],
			"Start":  instance.StartTime,
			"End":    instance.EndTime,
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Date", "Day", "Person", "Role", "Start", "End"},
		Rows:    rows,
	}
	title := fmt.Sprintf("Week Schedule %s", weekStart)
	return dataset, title, nil
}

func (s *ExportService) fail(jobID, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, found := s.registry[jobID]; found {
		j.Status = ExportStatusFailed
		j.Error = message
		j.UpdatedAt = time.Now().UTC()
	}
}

func (s *ExportService) snapshot(jobID string) *ExportJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, found := s.registry[jobID]
	if !found {
		return nil
	}
	copied := *job
	if job.Result != nil {
		result := *job.Result
		copied.Result = &result
	}
	return &copied
}
