package domain

import "encoding/json"

// Scenario is the closed set of campaign situations the diagnostic engine
// distinguishes. The numeric values are part of the API contract.
type Scenario int

const (
	ScenarioAboveTarget Scenario = 1
	ScenarioBelowTarget Scenario = 2
	ScenarioNoSales     Scenario = 3
	ScenarioVariable    Scenario = 4
)

func (s Scenario) String() string {
	switch s {
	case ScenarioAboveTarget:
		return "above_target"
	case ScenarioBelowTarget:
		return "below_target"
	case ScenarioNoSales:
		return "no_sales"
	case ScenarioVariable:
		return "variable"
	default:
		return "unknown"
	}
}

type DiagnosticStatus string

const (
	StatusExcellent DiagnosticStatus = "excellent"
	StatusGood      DiagnosticStatus = "good"
	StatusWarning   DiagnosticStatus = "warning"
	StatusCritical  DiagnosticStatus = "critical"
)

// Budget is a daily spend cap that may be absent entirely. The tagged form
// avoids arithmetic on an infinity sentinel. The zero value is unlimited,
// which is also what a missing daily_budget field decodes to.
type Budget struct {
	capped bool
	amount float64
}

func UnlimitedBudget() Budget {
	return Budget{}
}

func CappedBudget(amount float64) Budget {
	return Budget{capped: true, amount: amount}
}

func (b Budget) IsUnlimited() bool { return !b.capped }

// Amount returns the daily cap. Only meaningful when the budget is capped.
func (b Budget) Amount() float64 { return b.amount }

func (b Budget) MarshalJSON() ([]byte, error) {
	if !b.capped {
		return []byte("null"), nil
	}
	return json.Marshal(b.amount)
}

func (b *Budget) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = UnlimitedBudget()
		return nil
	}
	var amount float64
	if err := json.Unmarshal(data, &amount); err != nil {
		return err
	}
	*b = CappedBudget(amount)
	return nil
}

// DiagnosticOptions carries the campaign settings and traffic counters that
// accompany a calculation when a diagnosis is requested.
type DiagnosticOptions struct {
	ROASTarget       *float64 `json:"roas_target,omitempty"`
	DailyBudget      Budget   `json:"daily_budget"`
	HasMonthlyBudget bool     `json:"has_monthly_budget"`
	Impressions      int      `json:"impressions"`
	Clicks           int      `json:"clicks"`
	RecentEvents     int      `json:"recent_events"`
}

// DiagnosticInputs is the complete, pre-validated input to the diagnostic
// engine. Results must come from a successful metrics calculation.
type DiagnosticInputs struct {
	Results          CalculationResults
	ROASTarget       *float64
	DailyBudget      Budget
	HasMonthlyBudget bool
	Impressions      int
	Clicks           int
	ItemsSold        int
	RecentEvents     int
}

type ActionPlan struct {
	Immediate  []string `json:"immediate"`
	ShortTerm  []string `json:"short_term"`
	Monitoring []string `json:"monitoring"`
}

type DiagnosticResult struct {
	Scenario            Scenario         `json:"scenario"`
	ScenarioTitle       string           `json:"scenario_title"`
	ScenarioDescription string           `json:"scenario_description"`
	Status              DiagnosticStatus `json:"status"`
	PrimaryIssues       []string         `json:"primary_issues"`
	Recommendations     []string         `json:"recommendations"`
	ActionPlan          ActionPlan       `json:"action_plan"`
}
