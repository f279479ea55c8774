package service

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffcal/staffcal-api/internal/models"
	appErrors "github.com/staffcal/staffcal-api/pkg/errors"
	"github.com/staffcal/staffcal-api/pkg/jobs"
	"github.com/staffcal/staffcal-api/pkg/storage"
)

type stubFileStorage struct {
	saved map[string][]byte
}

func newStubFileStorage() *stubFileStorage {
	return &stubFileStorage{saved: make(map[string][]byte)}
}

func (s *stubFileStorage) Save(filename string, data []byte) (string, error) {
	s.saved[filename] = data
	return filename, nil
}

func (s *stubFileStorage) Open(filename string) (*os.File, error) {
	return nil, os.ErrNotExist
}

func (s *stubFileStorage) Delete(filename string) error { return nil }

func (s *stubFileStorage) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	return nil, nil
}

func exportTestGateway() *stubCalendarGateway {
	return &stubCalendarGateway{
		people: []models.Person{{ID: "person-1", Name: "John Doe"}},
		roles:  []models.Role{{ID: "role-1", Name: "Doctor"}},
		availability: []models.HoursRule{{
			ID:          "rule-1",
			PersonID:    strPtr("person-1"),
			RoleID:      "role-1",
			StartTime:   "09:00",
			EndTime:     "17:00",
			IsRecurring: true,
			DayOfWeek:   intPtr(0),
		}},
	}
}

func newExportService(t *testing.T) (*ExportService, *stubFileStorage) {
	t.Helper()
	files := newStubFileStorage()
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	svc := NewExportService(exportTestGateway(), files, signer, ExportConfig{Workers: 1}, nil)
	return svc, files
}

func TestExportEnqueueValidatesRequest(t *testing.T) {
	svc, _ := newExportService(t)

	_, err := svc.Enqueue(ExportWeekRequest{Format: "csv"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.Enqueue(ExportWeekRequest{WeekOf: day(2026, time.September, 2), Format: "xlsx"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestExportEnqueueRequiresStartedQueue(t *testing.T) {
	svc, _ := newExportService(t)

	_, err := svc.Enqueue(ExportWeekRequest{WeekOf: day(2026, time.September, 2), Format: "csv"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestExportBuildWeekDataset(t *testing.T) {
	svc, _ := newExportService(t)

	dataset, title, err := svc.buildWeekDataset(context.Background(), ExportWeekRequest{
		WeekOf: day(2026, time.September, 2),
		Format: "csv",
	})
	require.NoError(t, err)
	assert.Equal(t, "Week Schedule 2026-08-31", title)
	assert.Equal(t, []string{"Date", "Day", "Person", "Role", "Start", "End"}, dataset.Headers)

	// The Wednesday anchor expands to its Monday-first week; the weekly
	// Monday rule yields exactly one row.
	require.Len(t, dataset.Rows, 1)
	row := dataset.Rows[0]
	assert.Equal(t, "2026-08-31", row["Date"])
	assert.Equal(t, "Monday", row["Day"])
	assert.Equal(t, "John Doe", row["Person"])
	assert.Equal(t, "Doctor", row["Role"])
	assert.Equal(t, "09:00", row["Start"])
	assert.Equal(t, "17:00", row["End"])
}

func TestExportJobRendersAndSignsCSV(t *testing.T) {
	svc, files := newExportService(t)
	req := ExportWeekRequest{WeekOf: day(2026, time.September, 2), Format: "csv"}

	now := time.Now().UTC()
	svc.registry["job-1"] = &ExportJob{
		ID: "job-1", Format: ExportFormatCSV, Status: ExportStatusPending,
		Request: req, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, svc.handleJob(context.Background(), jobs.Job{ID: "job-1", Payload: req}))

	job, err := svc.Get("job-1")
	require.NoError(t, err)
	assert.Equal(t, ExportStatusCompleted, job.Status)
	require.NotNil(t, job.Result)
	assert.True(t, strings.HasPrefix(job.Result.URL, "/api/v1/export/"))

	jobID, relPath, err := svc.ParseToken(job.Result.Token)
	require.NoError(t, err)
	assert.Equal(t, "job-1", jobID)
	assert.Equal(t, job.Result.RelativePath, relPath)

	payload, found := files.saved[relPath]
	require.True(t, found)
	content := string(payload)
	assert.Contains(t, content, "Date,Day,Person,Role,Start,End")
	assert.Contains(t, content, "John Doe")
}

func TestExportJobMalformedPayloadFails(t *testing.T) {
	svc, _ := newExportService(t)
	now := time.Now().UTC()
	svc.registry["job-1"] = &ExportJob{ID: "job-1", Status: ExportStatusPending, CreatedAt: now, UpdatedAt: now}

	require.NoError(t, svc.handleJob(context.Background(), jobs.Job{ID: "job-1", Payload: "garbage"}))
	job, err := svc.Get("job-1")
	require.NoError(t, err)
	assert.Equal(t, ExportStatusFailed, job.Status)
	assert.NotEmpty(t, job.Error)
}

func TestExportQueueRoundTrip(t *testing.T) {
	svc, _ := newExportService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	job, err := svc.Enqueue(ExportWeekRequest{WeekOf: day(2026, time.September, 2), Format: "pdf"})
	require.NoError(t, err)
	assert.Equal(t, ExportStatusPending, job.Status)

	require.Eventually(t, func() bool {
		polled, err := svc.Get(job.ID)
		return err == nil && polled.Status == ExportStatusCompleted
	}, 5*time.Second, 20*time.Millisecond)

	_, err = svc.Get("missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
