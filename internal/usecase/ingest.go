package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"adprofit/internal/domain"
	"adprofit/pkg/logger"
	"adprofit/pkg/metrics"
)

// IngestService parses the two report formats sellers export from the
// marketplace: the ad-performance report and the manual-change log. Both
// arrive with locale-specific numeric formatting and slightly different
// column layouts per export locale, so columns are discovered from the
// header instead of assumed by position. The calculation core only ever
// receives the aggregated totals this service produces.
type IngestService struct {
	logger           *logger.Logger
	metrics          *metrics.Metrics
	changeWindowDays int
}

func NewIngestService(logger *logger.Logger, metrics *metrics.Metrics, changeWindowDays int) *IngestService {
	return &IngestService{
		logger:           logger,
		metrics:          metrics,
		changeWindowDays: changeWindowDays,
	}
}

// Column synonyms seen across export locales, all lower-cased.
var performanceColumns = map[string][]string{
	"impressions": {"impressions", "impressoes", "impressões", "prints"},
	"clicks":      {"clicks", "cliques"},
	"items":       {"items sold", "items_sold", "units sold", "units", "unidades vendidas", "vendas"},
	"gmv":         {"gmv", "revenue", "receita", "sales value", "valor de vendas"},
	"investment":  {"investment", "spend", "ad spend", "cost", "investimento", "custo"},
}

var changeLogColumns = map[string][]string{
	"timestamp": {"timestamp", "datetime", "date", "data", "data/hora", "time"},
	"field":     {"field", "setting", "parameter", "campo", "configuracao", "configuração"},
	"old":       {"old value", "from", "valor anterior", "de"},
	"new":       {"new value", "to", "novo valor", "para"},
}

// ParsePerformanceReport aggregates an ad-performance CSV into the totals
// the calculator consumes. Rows with unparseable numbers are skipped and
// counted, never fatal; a missing required column is.
func (s *IngestService) ParsePerformanceReport(ctx context.Context, r io.Reader) (domain.PerformanceTotals, error) {
	log := s.logger.WithContext(ctx)

	rows, header, err := readReport(r)
	if err != nil {
		return domain.PerformanceTotals{}, fmt.Errorf("performance report: %w", err)
	}

	cols := make(map[string]int, len(performanceColumns))
	for name, synonyms := range performanceColumns {
		idx := findColumn(header, synonyms)
		if idx < 0 {
			return domain.PerformanceTotals{}, fmt.Errorf("performance report: no %s column in header", name)
		}
		cols[name] = idx
	}

	var totals domain.PerformanceTotals
	for _, row := range rows {
		impressions, err1 := parseLocaleInt(field(row, cols["impressions"]))
		clicks, err2 := parseLocaleInt(field(row, cols["clicks"]))
		items, err3 := parseLocaleInt(field(row, cols["items"]))
		gmv, err4 := parseLocaleNumber(field(row, cols["gmv"]))
		investment, err5 := parseLocaleNumber(field(row, cols["investment"]))

		if err := firstError(err1, err2, err3, err4, err5); err != nil {
			log.WithError(err).WithField("row", row).Warn("Failed to parse performance row, skipping")
			s.metrics.RecordReportRowFailure("performance", "number_parse")
			totals.RowsSkipped++
			continue
		}

		totals.Impressions += impressions
		totals.Clicks += clicks
		totals.ItemsSold += items
		totals.GMV += gmv
		totals.Investment += investment
		totals.RowsParsed++
	}

	s.metrics.RecordReportRows("performance", "success", totals.RowsParsed)

	log.WithFields(map[string]any{
		"rows_parsed":  totals.RowsParsed,
		"rows_skipped": totals.RowsSkipped,
		"items_sold":   totals.ItemsSold,
	}).Info("Performance report aggregated")

	return totals, nil
}

// Timestamp layouts seen in change-log exports, tried in order.
var changeLogTimeFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseChangeLog counts manual configuration changes, with the recent count
// restricted to the trailing change window measured back from now. The
// reference time comes from the caller so results stay reproducible.
func (s *IngestService) ParseChangeLog(ctx context.Context, r io.Reader, now time.Time) (domain.ChangeSummary, error) {
	log := s.logger.WithContext(ctx)

	rows, header, err := readReport(r)
	if err != nil {
		return domain.ChangeSummary{}, fmt.Errorf("change log: %w", err)
	}

	tsCol := findColumn(header, changeLogColumns["timestamp"])
	if tsCol < 0 {
		return domain.ChangeSummary{}, fmt.Errorf("change log: no timestamp column in header")
	}
	fieldCol := findColumn(header, changeLogColumns["field"])
	oldCol := findColumn(header, changeLogColumns["old"])
	newCol := findColumn(header, changeLogColumns["new"])

	summary := domain.ChangeSummary{WindowDays: s.changeWindowDays}
	windowStart := now.AddDate(0, 0, -s.changeWindowDays)

	var events []domain.ChangeEvent
	for _, row := range rows {
		ts, err := parseChangeTime(field(row, tsCol))
		if err != nil {
			log.WithError(err).WithField("timestamp", field(row, tsCol)).Warn("Failed to parse change timestamp, skipping")
			s.metrics.RecordReportRowFailure("changes", "time_parse")
			summary.RowsSkipped++
			continue
		}
		events = append(events, domain.ChangeEvent{
			OccurredAt: ts,
			Field:      field(row, fieldCol),
			OldValue:   field(row, oldCol),
			NewValue:   field(row, newCol),
		})
	}

	for _, ev := range events {
		summary.TotalEvents++
		if !ev.OccurredAt.Before(windowStart) && !ev.OccurredAt.After(now) {
			summary.RecentEvents++
		}
	}

	s.metrics.RecordReportRows("changes", "success", summary.TotalEvents)

	log.WithFields(map[string]any{
		"total_events":  summary.TotalEvents,
		"recent_events": summary.RecentEvents,
		"window_days":   summary.WindowDays,
	}).Info("Change log aggregated")

	return summary, nil
}

// readReport sniffs the delimiter from the header line, then returns the
// data rows and the normalized header.
func readReport(r io.Reader) ([][]string, []string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read report body: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("report is empty")
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}

	return records[1:], header, nil
}

func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}

func findColumn(header []string, synonyms []string) int {
	for _, name := range synonyms {
		for i, h := range header {
			if h == name {
				return i
			}
		}
	}
	return -1
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// parseLocaleNumber accepts both numeric conventions the marketplace
// exports use: dot-thousands with comma decimals (1.234,56) and
// comma-thousands with dot decimals (1,234.56). When both separators are
// present the rightmost one is the decimal marker.
func parseLocaleNumber(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, fmt.Errorf("empty numeric value")
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// A lone comma followed by anything but a 3-digit group is a
		// decimal marker; otherwise the commas group thousands.
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 != 3 {
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastDot >= 0:
		// Mirror rule for dots, so 10.000 reads as ten thousand.
		if strings.Count(s, ".") > 1 || len(s)-lastDot-1 == 3 {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	return strconv.ParseFloat(s, 64)
}

func parseLocaleInt(raw string) (int, error) {
	f, err := parseLocaleNumber(raw)
	if err != nil {
		return 0, err
	}
	return int(math.Round(f)), nil
}

func parseChangeTime(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range changeLogTimeFormats {
		ts, err := time.Parse(layout, raw)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
