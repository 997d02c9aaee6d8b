package domain

import "time"

// PerformanceTotals is the pre-aggregated outcome of parsing an
// ad-performance report. The calculation core only ever sees these totals,
// never the report rows themselves.
type PerformanceTotals struct {
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	ItemsSold   int     `json:"items_sold"`
	GMV         float64 `json:"gmv"`
	Investment  float64 `json:"investment"`

	RowsParsed  int `json:"rows_parsed"`
	RowsSkipped int `json:"rows_skipped"`
}

// ChangeEvent is one manual configuration change from the change-log report.
type ChangeEvent struct {
	OccurredAt time.Time `json:"occurred_at"`
	Field      string    `json:"field"`
	OldValue   string    `json:"old_value"`
	NewValue   string    `json:"new_value"`
}

// ChangeSummary counts manual changes, with RecentEvents restricted to the
// trailing window the diagnostic engine cares about.
type ChangeSummary struct {
	TotalEvents  int `json:"total_events"`
	RecentEvents int `json:"recent_events"`
	WindowDays   int `json:"window_days"`

	RowsSkipped int `json:"rows_skipped"`
}
