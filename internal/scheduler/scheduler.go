package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Azahir21/track-pendapatan-bot/internal/domain/models"
	"github.com/Azahir21/track-pendapatan-bot/internal/service/reporting"
	"github.com/Azahir21/track-pendapatan-bot/internal/timeframe"
)

// Cron expressions are evaluated in the business time zone.
const (
	testSpec    = "* * * * *"
	weeklySpec  = "0 17 * * 5"
	monthlySpec = "0 9 1 * *"
	yearlySpec  = "0 10 1 1 *"

	monthlyTrendMonths = 3
	yearlyTrendMonths  = 12
)

// ErrUnknownSchedule is returned for schedule kinds that are not registered.
var ErrUnknownSchedule = errors.New("unknown schedule")

// ReportSource generates the reports that scheduled runs deliver.
type ReportSource interface {
	GeneratePeriodReport(ctx context.Context, managerID string, tf timeframe.TimeFrame) (models.PeriodReport, error)
	GenerateTrendAnalysis(ctx context.Context, managerID string, months int) (models.TrendAnalysis, error)
}

// Store provides the repository reads and writes scheduled runs need.
type Store interface {
	ListManagers(ctx context.Context) ([]models.Manager, error)
	SaveReportSnapshot(ctx context.Context, snapshot models.ReportSnapshot) error
}

// Messenger delivers rendered reports over WhatsApp.
type Messenger interface {
	SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error
}

// Enricher supplies optional context sections appended to scheduled reports.
// The summary is a one-line description of the report being delivered.
type Enricher interface {
	Sections(ctx context.Context, summary string) []string
}

// Archive records delivered report summaries outside the primary store.
type Archive interface {
	AppendSummary(ctx context.Context, snapshot models.ReportSnapshot) error
}

type scheduleState struct {
	spec        string
	description string
	enabled     bool
	entryID     cron.EntryID
}

// Scheduler manages the recurring report runs.
type Scheduler struct {
	cron      *cron.Cron
	reports   ReportSource
	store     Store
	messenger Messenger
	enricher  Enricher
	archive   Archive
	location  *time.Location
	logger    *zap.Logger
	now       func() time.Time

	mu        sync.RWMutex
	schedules map[models.ScheduleKind]*scheduleState
}

// NewScheduler creates a new scheduler instance. The enricher and archive may
// be nil; test mode additionally registers an every-minute schedule.
func NewScheduler(reports ReportSource, store Store, messenger Messenger, enricher Enricher, archive Archive, location *time.Location, testMode bool, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.Local
	}

	schedules := map[models.ScheduleKind]*scheduleState{
		models.ScheduleWeekly:  {spec: weeklySpec, description: "Fridays at 17:00", enabled: true},
		models.ScheduleMonthly: {spec: monthlySpec, description: "First day of the month at 09:00", enabled: true},
		models.ScheduleYearly:  {spec: yearlySpec, description: "January 1 at 10:00", enabled: true},
	}
	if testMode {
		schedules[models.ScheduleTest] = &scheduleState{spec: testSpec, description: "Every minute (test mode)", enabled: true}
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(location)),
		reports:   reports,
		store:     store,
		messenger: messenger,
		enricher:  enricher,
		archive:   archive,
		location:  location,
		logger:    logger,
		now:       time.Now,
		schedules: schedules,
	}
}

// Start registers the cron entries and starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting report scheduler", zap.String("timezone", s.location.String()))

	s.mu.Lock()
	for kind, state := range s.schedules {
		kind := kind
		id, err := s.cron.AddFunc(state.spec, func() { s.runKind(kind) })
		if err != nil {
			s.logger.Error("failed to register report schedule", zap.String("kind", string(kind)), zap.Error(err))
			continue
		}
		state.entryID = id
	}
	s.mu.Unlock()

	s.cron.Start()

	s.mu.RLock()
	for kind, state := range s.schedules {
		s.logger.Info("report schedule registered",
			zap.String("kind", string(kind)),
			zap.String("spec", state.spec),
			zap.Time("next_run", s.cron.Entry(state.entryID).Next))
	}
	s.mu.RUnlock()
}

// Stop stops the scheduler and waits for any in-flight run to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping report scheduler")
	<-s.cron.Stop().Done()
}

// Schedules lists every registered schedule in a fixed order.
func (s *Scheduler) Schedules() []models.ReportSchedule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order := []models.ScheduleKind{models.ScheduleTest, models.ScheduleWeekly, models.ScheduleMonthly, models.ScheduleYearly}
	schedules := make([]models.ReportSchedule, 0, len(s.schedules))
	for _, kind := range order {
		state, ok := s.schedules[kind]
		if !ok {
			continue
		}
		schedules = append(schedules, models.ReportSchedule{
			Kind:        kind,
			Spec:        state.spec,
			Description: state.description,
			Enabled:     state.enabled,
		})
	}
	return schedules
}

// UpdateSchedule enables or disables one schedule. The cron entry keeps
// firing; a disabled schedule is skipped at fire time, so a run already due
// when the flag flips may still go out once.
func (s *Scheduler) UpdateSchedule(kind models.ScheduleKind, enabled bool) (models.ReportSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.schedules[kind]
	if !ok {
		return models.ReportSchedule{}, ErrUnknownSchedule
	}

	state.enabled = enabled
	s.logger.Info("report schedule updated", zap.String("kind", string(kind)), zap.Bool("enabled", enabled))
	return models.ReportSchedule{
		Kind:        kind,
		Spec:        state.spec,
		Description: state.description,
		Enabled:     state.enabled,
	}, nil
}

func (s *Scheduler) runKind(kind models.ScheduleKind) {
	s.mu.RLock()
	state, ok := s.schedules[kind]
	enabled := ok && state.enabled
	s.mu.RUnlock()

	if !enabled {
		s.logger.Debug("skipping disabled schedule", zap.String("kind", string(kind)))
		return
	}

	ctx := context.Background()
	now := s.now().In(s.location)

	managers, err := s.store.ListManagers(ctx)
	if err != nil {
		s.logger.Error("failed to list managers for scheduled report", zap.String("kind", string(kind)), zap.Error(err))
		return
	}
	if len(managers) == 0 {
		s.logger.Info("no managers registered, skipping scheduled report", zap.String("kind", string(kind)))
		return
	}

	for _, manager := range managers {
		if err := s.deliver(ctx, kind, manager, now); err != nil {
			s.logger.Error("failed to deliver scheduled report",
				zap.String("kind", string(kind)),
				zap.String("manager_id", manager.ID),
				zap.Error(err))
		}
	}
}

func (s *Scheduler) deliver(ctx context.Context, kind models.ScheduleKind, manager models.Manager, now time.Time) error {
	message, snapshot, err := s.compose(ctx, kind, manager, now)
	if err != nil {
		return err
	}

	req := models.OutboundMessageRequest{To: manager.Phone, Message: message}
	if err := s.messenger.SendOutbound(ctx, req); err != nil {
		return fmt.Errorf("send report to %s: %w", manager.Phone, err)
	}

	if err := s.store.SaveReportSnapshot(ctx, snapshot); err != nil {
		s.logger.Warn("failed to save report snapshot", zap.String("manager_id", manager.ID), zap.Error(err))
	}
	if s.archive != nil {
		if err := s.archive.AppendSummary(ctx, snapshot); err != nil {
			s.logger.Warn("failed to archive report summary", zap.String("manager_id", manager.ID), zap.Error(err))
		}
	}

	s.logger.Info("scheduled report delivered", zap.String("kind", string(kind)), zap.String("manager_id", manager.ID))
	return nil
}

func (s *Scheduler) compose(ctx context.Context, kind models.ScheduleKind, manager models.Manager, now time.Time) (string, models.ReportSnapshot, error) {
	switch kind {
	case models.ScheduleWeekly, models.ScheduleTest:
		report, err := s.reports.GeneratePeriodReport(ctx, manager.ID, timeframe.ThisWeek(now))
		if err != nil {
			return "", models.ReportSnapshot{}, fmt.Errorf("generate weekly report: %w", err)
		}
		snapshot := periodSnapshot(kind, manager.ID, report, now)
		return s.appendSections(ctx, reporting.RenderPeriodReport(report), snapshot), snapshot, nil

	case models.ScheduleMonthly:
		report, err := s.reports.GeneratePeriodReport(ctx, manager.ID, timeframe.LastMonth(now))
		if err != nil {
			return "", models.ReportSnapshot{}, fmt.Errorf("generate monthly report: %w", err)
		}
		analysis, err := s.reports.GenerateTrendAnalysis(ctx, manager.ID, monthlyTrendMonths)
		if err != nil {
			return "", models.ReportSnapshot{}, fmt.Errorf("generate monthly trend: %w", err)
		}
		snapshot := periodSnapshot(kind, manager.ID, report, now)
		message := reporting.RenderPeriodReport(report) + "\n\n" + reporting.RenderTrendAnalysis(analysis)
		return s.appendSections(ctx, message, snapshot), snapshot, nil

	case models.ScheduleYearly:
		analysis, err := s.reports.GenerateTrendAnalysis(ctx, manager.ID, yearlyTrendMonths)
		if err != nil {
			return "", models.ReportSnapshot{}, fmt.Errorf("generate yearly trend: %w", err)
		}
		snapshot := trendSnapshot(kind, manager.ID, analysis, yearlyTrendMonths, now)
		return s.appendSections(ctx, reporting.RenderTrendAnalysis(analysis), snapshot), snapshot, nil
	}

	return "", models.ReportSnapshot{}, fmt.Errorf("%w: %s", ErrUnknownSchedule, kind)
}

func (s *Scheduler) appendSections(ctx context.Context, message string, snapshot models.ReportSnapshot) string {
	if s.enricher == nil {
		return message
	}

	summary := fmt.Sprintf("%s: total income %s across %d entries.",
		snapshot.PeriodLabel, reporting.FormatAmount(snapshot.TotalIncome), snapshot.TotalEntries)
	for _, section := range s.enricher.Sections(ctx, summary) {
		message += "\n\n" + section
	}
	return message
}

func periodSnapshot(kind models.ScheduleKind, managerID string, report models.PeriodReport, now time.Time) models.ReportSnapshot {
	return models.ReportSnapshot{
		Kind:         kind,
		ManagerID:    managerID,
		PeriodLabel:  report.Label,
		Start:        report.Start,
		End:          report.End,
		TotalIncome:  report.TotalIncome,
		TotalEntries: report.TotalEntries,
		CreatedAt:    now,
	}
}

func trendSnapshot(kind models.ScheduleKind, managerID string, analysis models.TrendAnalysis, months int, now time.Time) models.ReportSnapshot {
	window := timeframe.LastNMonths(now, months)

	total := decimal.Zero
	entries := 0
	for _, p := range analysis.Points {
		total = total.Add(p.TotalIncome)
		entries += p.EntryCount
	}

	return models.ReportSnapshot{
		Kind:         kind,
		ManagerID:    managerID,
		PeriodLabel:  window.Label,
		Start:        window.Start,
		End:          window.End,
		TotalIncome:  total,
		TotalEntries: entries,
		CreatedAt:    now,
	}
}
