package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/Azahir21/track-pendapatan-bot/internal/config"
	"github.com/Azahir21/track-pendapatan-bot/internal/domain/models"
)

const defaultAppendRange = "Reports!A:H"

// Archive defines the spreadsheet operations used for report history.
type Archive interface {
	AppendSummary(ctx context.Context, snapshot models.ReportSnapshot) error
}

// GoogleSheetArchive implements the Archive interface using the official
// Google Sheets API. Each delivered scheduled report becomes one row, so
// managers get a browsable history next to the WhatsApp messages.
type GoogleSheetArchive struct {
	service       *sheetsapi.Service
	spreadsheetID string
	appendRange   string
	logger        *zap.Logger
}

// NewGoogleSheetArchive builds a Google Sheets backed archive instance.
func NewGoogleSheetArchive(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Archive, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	appendRange := cfg.AppendRange
	if appendRange == "" {
		appendRange = defaultAppendRange
	}

	return &GoogleSheetArchive{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		appendRange:   appendRange,
		logger:        logger,
	}, nil
}

// AppendSummary appends one summary row for a delivered report.
func (a *GoogleSheetArchive) AppendSummary(ctx context.Context, snapshot models.ReportSnapshot) error {
	values := []interface{}{
		snapshot.CreatedAt.Format(time.RFC3339),
		string(snapshot.Kind),
		snapshot.ManagerID,
		snapshot.PeriodLabel,
		snapshot.Start.Format("2006-01-02"),
		snapshot.End.Format("2006-01-02"),
		snapshot.TotalIncome.String(),
		snapshot.TotalEntries,
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := a.service.Spreadsheets.Values.Append(a.spreadsheetID, a.appendRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append summary into range %s: %w", a.appendRange, err)
	}

	a.logger.Debug("report summary archived", zap.String("kind", string(snapshot.Kind)), zap.String("manager_id", snapshot.ManagerID))
	return nil
}
