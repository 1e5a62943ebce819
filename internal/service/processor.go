package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/netcreators/occupancy-audit-worker/internal/booking"
	"github.com/netcreators/occupancy-audit-worker/internal/config"
	"github.com/netcreators/occupancy-audit-worker/internal/interval"
	"github.com/netcreators/occupancy-audit-worker/internal/logging"
	"github.com/netcreators/occupancy-audit-worker/internal/model"
	"github.com/netcreators/occupancy-audit-worker/internal/mq"
	"github.com/netcreators/occupancy-audit-worker/internal/reconcile"
	"github.com/netcreators/occupancy-audit-worker/internal/report"
	"github.com/netcreators/occupancy-audit-worker/internal/repository"
	"github.com/netcreators/occupancy-audit-worker/internal/sensorlog"
)

// jobDateFormat is the date layout for the job's filter bounds.
const jobDateFormat = "2006-01-02"

// ReconcileJob is the incoming job message. BookingFile names a spreadsheet
// ledger; when empty the booking windows come from the PMS database.
// StartDate/EndDate and Rooms carry the requester's filter selection.
type ReconcileJob struct {
	JobID         string   `json:"job_id"`
	SensorLogPath string   `json:"sensor_log_path"`
	BookingFile   string   `json:"booking_file,omitempty"`
	StartDate     string   `json:"start_date,omitempty"`
	EndDate       string   `json:"end_date,omitempty"`
	Rooms         []string `json:"rooms,omitempty"`
}

// FilterOptions narrows sensor events to the requested date range and
// room selection before interval building.
type FilterOptions struct {
	Start *time.Time
	End   *time.Time
	Rooms []string
}

// FilterEvents applies the job's filter selection. Both bounds are
// inclusive; the end bound is midnight of the end date, so events later
// that day fall outside the range.
func FilterEvents(events []model.SensorEvent, opts FilterOptions) []model.SensorEvent {
	roomSet := make(map[string]struct{}, len(opts.Rooms))
	for _, room := range opts.Rooms {
		roomSet[room] = struct{}{}
	}

	var filtered []model.SensorEvent
	for _, ev := range events {
		if len(roomSet) > 0 {
			if _, ok := roomSet[ev.Room]; !ok {
				continue
			}
		}
		if opts.Start != nil && ev.Timestamp.Before(*opts.Start) {
			continue
		}
		if opts.End != nil && ev.Timestamp.After(*opts.End) {
			continue
		}
		filtered = append(filtered, ev)
	}
	return filtered
}

// ProcessorService runs the full reconciliation pipeline for one job:
// parse -> filter -> build intervals -> reconcile -> render reports.
type ProcessorService struct {
	repo         *repository.Repository
	ledgerLoader *booking.XLSXLoader
	publisher    *mq.Publisher
	builder      *interval.Builder
	reconciler   *reconcile.Reconciler
	reports      *report.Writer
	cfg          *config.Config
	logger       *zap.Logger
}

// NewProcessorService creates a new processor service
func NewProcessorService(
	repo *repository.Repository,
	ledgerLoader *booking.XLSXLoader,
	publisher *mq.Publisher,
	builder *interval.Builder,
	reconciler *reconcile.Reconciler,
	reports *report.Writer,
	cfg *config.Config,
	logger *zap.Logger,
) *ProcessorService {
	return &ProcessorService{
		repo:         repo,
		ledgerLoader: ledgerLoader,
		publisher:    publisher,
		builder:      builder,
		reconciler:   reconciler,
		reports:      reports,
		cfg:          cfg,
		logger:       logger,
	}
}

// ProcessMessage processes an incoming reconciliation job. Input-shape
// errors (unreadable files, malformed job, bad ledger structure) return
// an error so the job lands in the DLQ with no partial report. A run that
// completes but finds nothing is not an error: it logs a warning,
// publishes a zero-count summary and ACKs.
func (s *ProcessorService) ProcessMessage(ctx context.Context, body []byte) error {
	var job ReconcileJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("failed to unmarshal job: %w", err)
	}
	if job.JobID == "" {
		job.JobID = uuid.New().String()
	}
	if job.SensorLogPath == "" {
		return fmt.Errorf("job %s has no sensor log path", job.JobID)
	}

	jobLogger := logging.WithJobID(s.logger, job.JobID)
	jobLogger.Info("processing reconciliation job",
		zap.String("sensor_log", job.SensorLogPath),
		zap.String("booking_file", job.BookingFile),
		zap.Int("room_filter_count", len(job.Rooms)),
	)

	opts, err := parseFilter(job)
	if err != nil {
		return err
	}

	events, err := s.loadEvents(job, jobLogger)
	if err != nil {
		return err
	}

	bookings, err := s.loadBookings(ctx, job)
	if err != nil {
		jobLogger.Error("failed to load booking windows", zap.Error(err))
		return fmt.Errorf("failed to load booking windows: %w", err)
	}

	events = FilterEvents(events, opts)
	if len(events) == 0 {
		jobLogger.Warn("no light activity events found in the selected date range")
		s.publishSummary(ctx, jobLogger, mq.RunSummary{JobID: job.JobID})
		return nil
	}

	intervals := s.builder.Build(events)
	if len(intervals) == 0 {
		jobLogger.Warn("no intervals built from filtered events",
			zap.Int("event_count", len(events)))
		s.publishSummary(ctx, jobLogger, mq.RunSummary{JobID: job.JobID, EventCount: len(events)})
		return nil
	}

	records := s.reconciler.Reconcile(intervals, bookings)

	start, end := reportBounds(opts, events)
	lightPath, err := s.reports.WriteLightDurationReport(intervals, start, end)
	if err != nil {
		jobLogger.Error("failed to write light duration report", zap.Error(err))
		return err
	}
	comparisonPath, err := s.reports.WriteComparisonReport(records, start, end)
	if err != nil {
		jobLogger.Error("failed to write comparison report", zap.Error(err))
		return err
	}

	summary := mq.RunSummary{
		JobID:                job.JobID,
		EventCount:           len(events),
		IntervalCount:        len(intervals),
		LightReportPath:      lightPath,
		ComparisonReportPath: comparisonPath,
	}
	for _, rec := range records {
		switch rec.Status {
		case model.StatusValid:
			summary.ValidCount++
		case model.StatusMismatch:
			summary.MismatchCount++
		case model.StatusUnregistered:
			summary.UnregisteredCount++
		}
	}
	s.publishSummary(ctx, jobLogger, summary)

	jobLogger.Info("job processed successfully",
		zap.Int("interval_count", len(intervals)),
		zap.Int("valid", summary.ValidCount),
		zap.Int("mismatch", summary.MismatchCount),
		zap.Int("unregistered", summary.UnregisteredCount),
		zap.String("light_report", lightPath),
		zap.String("comparison_report", comparisonPath),
	)

	return nil
}

func (s *ProcessorService) loadEvents(job ReconcileJob, logger *zap.Logger) ([]model.SensorEvent, error) {
	f, err := os.Open(job.SensorLogPath)
	if err != nil {
		logger.Error("failed to open sensor log", zap.Error(err))
		return nil, fmt.Errorf("failed to open sensor log '%s': %w", job.SensorLogPath, err)
	}
	defer f.Close()

	result, err := sensorlog.Parse(f)
	if err != nil {
		logger.Error("failed to parse sensor log", zap.Error(err))
		return nil, err
	}
	if result.DroppedLines > 0 {
		logger.Warn("dropped malformed light log lines",
			zap.Int("dropped", result.DroppedLines))
	}
	return result.Events, nil
}

func (s *ProcessorService) loadBookings(ctx context.Context, job ReconcileJob) ([]model.BookingWindow, error) {
	if job.BookingFile != "" {
		return s.ledgerLoader.Load(ctx, job.BookingFile)
	}
	if len(job.Rooms) > 0 {
		return s.repo.ListBookingWindowsForRooms(ctx, job.Rooms)
	}
	return s.repo.ListBookingWindows(ctx)
}

// publishSummary publishes the run summary. Publish failures are logged
// but do not fail the job; the reports are already on disk.
func (s *ProcessorService) publishSummary(ctx context.Context, logger *zap.Logger, summary mq.RunSummary) {
	summary.CompletedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.publisher.PublishRunSummary(ctx, summary, s.cfg.RabbitMQ.WorkerRoutingKey); err != nil {
		logger.Error("failed to publish run summary",
			zap.Error(err),
			zap.String("job_id", summary.JobID),
		)
	}
}

func parseFilter(job ReconcileJob) (FilterOptions, error) {
	opts := FilterOptions{Rooms: job.Rooms}
	if job.StartDate != "" {
		t, err := time.Parse(jobDateFormat, job.StartDate)
		if err != nil {
			return FilterOptions{}, fmt.Errorf("invalid start_date '%s': %w", job.StartDate, err)
		}
		opts.Start = &t
	}
	if job.EndDate != "" {
		t, err := time.Parse(jobDateFormat, job.EndDate)
		if err != nil {
			return FilterOptions{}, fmt.Errorf("invalid end_date '%s': %w", job.EndDate, err)
		}
		opts.End = &t
	}
	return opts, nil
}

// reportBounds picks the dates embedded in report file names: the job's
// own range when given, otherwise the span of the filtered events.
func reportBounds(opts FilterOptions, events []model.SensorEvent) (time.Time, time.Time) {
	var start, end time.Time
	if opts.Start != nil {
		start = *opts.Start
	}
	if opts.End != nil {
		end = *opts.End
	}
	if start.IsZero() || end.IsZero() {
		minTS, maxTS := events[0].Timestamp, events[0].Timestamp
		for _, ev := range events[1:] {
			if ev.Timestamp.Before(minTS) {
				minTS = ev.Timestamp
			}
			if ev.Timestamp.After(maxTS) {
				maxTS = ev.Timestamp
			}
		}
		if start.IsZero() {
			start = minTS
		}
		if end.IsZero() {
			end = maxTS
		}
	}
	return start, end
}
