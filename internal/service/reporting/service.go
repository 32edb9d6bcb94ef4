package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Azahir21/track-pendapatan-bot/internal/domain/models"
	"github.com/Azahir21/track-pendapatan-bot/internal/timeframe"
)

const (
	// entryFetchLimit bounds how many income entries are pulled per employee.
	// Entries are unique per day, so this covers close to three years.
	entryFetchLimit = 1000

	defaultTrendMonths = 3
)

// Repository defines the store reads the reporting service depends on.
type Repository interface {
	ListEmployees(ctx context.Context, managerID string) ([]models.Employee, error)
	ListIncomeEntries(ctx context.Context, employeeID string, limit int) ([]models.IncomeRecord, error)
}

// Service turns raw income entries into employee, period and trend reports.
type Service struct {
	repo     Repository
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new reporting service instance. Time frames and trend
// months are resolved against the current date in the given business location.
func NewService(repo Repository, location *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.Local
	}
	return &Service{repo: repo, location: location, logger: logger, now: time.Now}
}

// GenerateEmployeeReports builds one report per employee of the manager,
// sorted descending by total income. A non-empty nameFilter keeps only
// employees whose name contains it, case-insensitively. An unknown manager
// yields an empty slice, not an error.
func (s *Service) GenerateEmployeeReports(ctx context.Context, managerID, nameFilter string, window *timeframe.TimeFrame) ([]models.EmployeeReport, error) {
	employees, err := s.repo.ListEmployees(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("list employees for manager %s: %w", managerID, err)
	}

	filter := strings.ToLower(strings.TrimSpace(nameFilter))

	reports := make([]models.EmployeeReport, 0, len(employees))
	for _, emp := range employees {
		if filter != "" && !strings.Contains(strings.ToLower(emp.Name), filter) {
			continue
		}

		entries, err := s.repo.ListIncomeEntries(ctx, emp.ID, entryFetchLimit)
		if err != nil {
			return nil, fmt.Errorf("list income entries for employee %s: %w", emp.ID, err)
		}

		reports = append(reports, BuildEmployeeReport(emp, entries, window))
	}

	SortByIncome(reports)
	return reports, nil
}

// GeneratePeriodReport aggregates every employee of the manager over the
// given window and attaches period insights.
func (s *Service) GeneratePeriodReport(ctx context.Context, managerID string, tf timeframe.TimeFrame) (models.PeriodReport, error) {
	reports, err := s.GenerateEmployeeReports(ctx, managerID, "", &tf)
	if err != nil {
		return models.PeriodReport{}, err
	}

	report := BuildPeriodReport(tf, reports)
	report.Insights = PeriodInsights(report.EmployeeReports, tf.DaySpan())
	return report, nil
}

// GeneratePeriodReportFromText resolves the free-text window first, falling
// back to the current month when the text matches nothing.
func (s *Service) GeneratePeriodReportFromText(ctx context.Context, managerID, text string) (models.PeriodReport, error) {
	tf := s.ParseTimeFrame(text)
	if !tf.Matched {
		s.logger.Debug("unrecognized time frame, defaulting to current month", zap.String("text", text))
	}
	return s.GeneratePeriodReport(ctx, managerID, tf)
}

// GenerateTrendAnalysis builds one period report per calendar month for the
// months consecutive months ending now, oldest first, and classifies the
// trajectory across them.
func (s *Service) GenerateTrendAnalysis(ctx context.Context, managerID string, months int) (models.TrendAnalysis, error) {
	if months < 1 {
		months = defaultTrendMonths
	}

	ref := s.now().In(s.location)
	points := make([]models.TrendPoint, 0, months)
	for offset := months - 1; offset >= 0; offset-- {
		tf := timeframe.MonthOf(ref, -offset)
		report, err := s.GeneratePeriodReport(ctx, managerID, tf)
		if err != nil {
			return models.TrendAnalysis{}, err
		}

		points = append(points, models.TrendPoint{
			Label:        tf.Label,
			TotalIncome:  report.TotalIncome,
			EntryCount:   report.TotalEntries,
			AverageDaily: report.AverageDaily,
		})
	}

	direction, change := AnalyzeTrend(points)
	return models.TrendAnalysis{
		Points:        points,
		Direction:     direction,
		ChangePercent: change,
		Insights:      TrendInsights(points, direction, change),
	}, nil
}

// ParseTimeFrame resolves a free-text window against the current date in the
// business location.
func (s *Service) ParseTimeFrame(text string) timeframe.TimeFrame {
	return timeframe.Parse(text, s.now().In(s.location))
}
