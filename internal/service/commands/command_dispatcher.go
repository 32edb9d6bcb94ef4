package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Azahir21/track-pendapatan-bot/internal/domain/models"
	"github.com/Azahir21/track-pendapatan-bot/internal/repository/mongodb"
	"github.com/Azahir21/track-pendapatan-bot/internal/service/reporting"
	"github.com/Azahir21/track-pendapatan-bot/internal/timeframe"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

const (
	dateFormat = "2006-01-02"

	defaultTrendMonths = 3
	minTrendMonths     = 1
	maxTrendMonths     = 24
)

const (
	helpReply = `*Available commands*
/income <amount> [notes] - record today's income
/report [time frame] - income report for your team
/employee <name> [time frame] - one employee's breakdown
/trend [months] - month by month income trend
/help - this message

Time frames: this week, last week, N weeks ago, this month, last month, last N months.`

	unknownReply = "Unknown command. Send /help to see what I understand."

	notRegisteredReply = "This number is not registered. Ask your manager to add it first."
	managerOnlyReply   = "Only registered managers can request reports."
	employeeOnlyReply  = "Income entries come from employee numbers. Managers can request /report instead."

	incomeUsageReply   = "Usage: /income <amount> [notes], e.g. /income 250000 weekend sales."
	employeeUsageReply = "Usage: /employee <name> [time frame], e.g. /employee ayu last month."
	trendUsageReply    = "Usage: /trend [months], e.g. /trend 6."
)

// Store provides the lookups and writes the dispatcher needs.
type Store interface {
	FindManagerByPhone(ctx context.Context, phone string) (models.Manager, error)
	FindEmployeeByPhone(ctx context.Context, phone string) (models.Employee, error)
	SaveIncomeRecord(ctx context.Context, record models.IncomeRecord) error
}

// ReportingAdapter defines the reporting functions required by the dispatcher.
type ReportingAdapter interface {
	GenerateEmployeeReports(ctx context.Context, managerID, nameFilter string, window *timeframe.TimeFrame) ([]models.EmployeeReport, error)
	GeneratePeriodReportFromText(ctx context.Context, managerID, text string) (models.PeriodReport, error)
	GenerateTrendAnalysis(ctx context.Context, managerID string, months int) (models.TrendAnalysis, error)
	ParseTimeFrame(text string) timeframe.TimeFrame
}

// Dispatcher executes parsed commands coming from chat messages.
type Dispatcher interface {
	HandleText(ctx context.Context, from, text string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	store     Store
	reporting ReportingAdapter
	location  *time.Location
	logger    *zap.Logger
	now       func() time.Time
}

// NewService constructs a command dispatcher. Dates for new income entries
// are resolved in the given business location.
func NewService(store Store, reportingSvc ReportingAdapter, location *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.Local
	}
	return &Service{
		store:     store,
		reporting: reportingSvc,
		location:  location,
		logger:    logger,
		now:       time.Now,
	}
}

// HandleText parses one inbound message and returns the reply to send back.
// Unknown senders and malformed arguments produce guidance replies, not
// errors; errors are reserved for storage and generation failures.
func (s *Service) HandleText(ctx context.Context, from, text string) (string, error) {
	cmd := models.ParseCommand(text)

	s.logger.Debug("dispatching command",
		zap.String("command", string(cmd.Type)),
		zap.String("sender", from),
		zap.Any("args", cmd.Args))

	switch cmd.Type {
	case models.CommandIncome:
		return s.handleIncome(ctx, from, cmd)
	case models.CommandReport:
		return s.handleReport(ctx, from, cmd)
	case models.CommandEmployee:
		return s.handleEmployee(ctx, from, cmd)
	case models.CommandTrend:
		return s.handleTrend(ctx, from, cmd)
	case models.CommandHelp:
		return helpReply, nil
	default:
		return unknownReply, nil
	}
}

func (s *Service) handleIncome(ctx context.Context, sender string, cmd models.Command) (string, error) {
	employee, reply, err := s.requireEmployee(ctx, sender)
	if err != nil || reply != "" {
		return reply, err
	}

	record, err := s.buildIncomeRecord(cmd, employee.ID)
	if errors.Is(err, ErrInvalidArguments) {
		return incomeUsageReply, nil
	}
	if err != nil {
		return "", err
	}

	if err := s.store.SaveIncomeRecord(ctx, record); err != nil {
		return "", fmt.Errorf("save income record: %w", err)
	}

	message := fmt.Sprintf("Income saved for %s: %s.", record.Date.Format(dateFormat), reporting.FormatAmount(record.Amount))
	if record.Notes != "" {
		message += fmt.Sprintf(" Notes: %s.", record.Notes)
	}
	return message, nil
}

func (s *Service) handleReport(ctx context.Context, sender string, cmd models.Command) (string, error) {
	manager, reply, err := s.requireManager(ctx, sender)
	if err != nil || reply != "" {
		return reply, err
	}

	report, err := s.reporting.GeneratePeriodReportFromText(ctx, manager.ID, strings.Join(cmd.Args, " "))
	if err != nil {
		return "", fmt.Errorf("generate period report: %w", err)
	}
	return reporting.RenderPeriodReport(report), nil
}

func (s *Service) handleEmployee(ctx context.Context, sender string, cmd models.Command) (string, error) {
	manager, reply, err := s.requireManager(ctx, sender)
	if err != nil || reply != "" {
		return reply, err
	}

	if len(cmd.Args) == 0 {
		return employeeUsageReply, nil
	}

	window := s.reporting.ParseTimeFrame(strings.Join(cmd.Args[1:], " "))
	reports, err := s.reporting.GenerateEmployeeReports(ctx, manager.ID, cmd.Args[0], &window)
	if err != nil {
		return "", fmt.Errorf("generate employee reports: %w", err)
	}
	return reporting.RenderEmployeeReports(reports, window.Label), nil
}

func (s *Service) handleTrend(ctx context.Context, sender string, cmd models.Command) (string, error) {
	manager, reply, err := s.requireManager(ctx, sender)
	if err != nil || reply != "" {
		return reply, err
	}

	months := defaultTrendMonths
	if len(cmd.Args) > 0 {
		n, err := strconv.Atoi(cmd.Args[0])
		if err != nil {
			return trendUsageReply, nil
		}
		months = n
	}
	if months < minTrendMonths {
		months = minTrendMonths
	}
	if months > maxTrendMonths {
		months = maxTrendMonths
	}

	analysis, err := s.reporting.GenerateTrendAnalysis(ctx, manager.ID, months)
	if err != nil {
		return "", fmt.Errorf("generate trend analysis: %w", err)
	}
	return reporting.RenderTrendAnalysis(analysis), nil
}

func (s *Service) buildIncomeRecord(cmd models.Command, employeeID string) (models.IncomeRecord, error) {
	if len(cmd.Args) == 0 {
		return models.IncomeRecord{}, ErrInvalidArguments
	}

	amount, err := decimal.NewFromString(cmd.Args[0])
	if err != nil || !amount.IsPositive() {
		return models.IncomeRecord{}, ErrInvalidArguments
	}

	notes := ""
	if len(cmd.Args) > 1 {
		notes = strings.Join(cmd.Args[1:], " ")
	}

	return models.IncomeRecord{
		EmployeeID: employeeID,
		Date:       s.now().In(s.location),
		Amount:     amount,
		Notes:      notes,
	}, nil
}

// requireManager resolves the sender as a manager. A non-empty reply means
// the sender cannot proceed and should be told why.
func (s *Service) requireManager(ctx context.Context, sender string) (models.Manager, string, error) {
	manager, err := s.store.FindManagerByPhone(ctx, sender)
	if err == nil {
		return manager, "", nil
	}
	if !errors.Is(err, mongodb.ErrNotFound) {
		return models.Manager{}, "", fmt.Errorf("resolve manager %s: %w", sender, err)
	}

	switch _, eerr := s.store.FindEmployeeByPhone(ctx, sender); {
	case eerr == nil:
		return models.Manager{}, managerOnlyReply, nil
	case errors.Is(eerr, mongodb.ErrNotFound):
		return models.Manager{}, notRegisteredReply, nil
	default:
		return models.Manager{}, "", fmt.Errorf("resolve sender %s: %w", sender, eerr)
	}
}

// requireEmployee resolves the sender as an employee, mirroring requireManager.
func (s *Service) requireEmployee(ctx context.Context, sender string) (models.Employee, string, error) {
	employee, err := s.store.FindEmployeeByPhone(ctx, sender)
	if err == nil {
		return employee, "", nil
	}
	if !errors.Is(err, mongodb.ErrNotFound) {
		return models.Employee{}, "", fmt.Errorf("resolve employee %s: %w", sender, err)
	}

	switch _, merr := s.store.FindManagerByPhone(ctx, sender); {
	case merr == nil:
		return models.Employee{}, employeeOnlyReply, nil
	case errors.Is(merr, mongodb.ErrNotFound):
		return models.Employee{}, notRegisteredReply, nil
	default:
		return models.Employee{}, "", fmt.Errorf("resolve sender %s: %w", sender, merr)
	}
}
