package usecase

import (
	"strings"
	"testing"

	"adprofit/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthyResults() domain.CalculationResults {
	results, err := CalculateMetrics(baselineInputs())
	if err != nil {
		panic(err)
	}
	return results
}

func anyContains(list []string, substr string) bool {
	for _, msg := range list {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

func TestDiagnoseAboveTargetStaysExcellent(t *testing.T) {
	in := domain.DiagnosticInputs{
		Results:     healthyResults(),
		ROASTarget:  floatPtr(8),
		DailyBudget: domain.UnlimitedBudget(),
		Impressions: 5000,
		Clicks:      150,
		ItemsSold:   20,
	}

	result := Diagnose(in)

	assert.Equal(t, domain.ScenarioAboveTarget, result.Scenario)
	assert.Equal(t, domain.StatusExcellent, result.Status)
	assert.Empty(t, result.PrimaryIssues)
	assert.True(t, anyContains(result.Recommendations, "scale the budget"),
		"unlimited budget should suggest scaling")
	assert.NotEmpty(t, result.ActionPlan.Immediate)
	assert.NotEmpty(t, result.ActionPlan.Monitoring)
}

func TestDiagnoseAboveTargetDowngradesOnThinMargin(t *testing.T) {
	results := healthyResults()
	results.MLL = 9

	in := domain.DiagnosticInputs{
		Results:     results,
		ROASTarget:  floatPtr(8),
		DailyBudget: domain.CappedBudget(50),
		ItemsSold:   20,
	}

	result := Diagnose(in)

	assert.Equal(t, domain.ScenarioAboveTarget, result.Scenario)
	assert.Equal(t, domain.StatusWarning, result.Status)
	assert.True(t, anyContains(result.PrimaryIssues, "cost structure"))
}

func TestDiagnoseAboveTargetDowngradesOnRedCompetitiveness(t *testing.T) {
	results := healthyResults()
	results.MinPrice = 20
	results.MaxPrice = 25
	results.Competitiveness = &domain.Competitiveness{
		PVTargetMLL15: 30,
		Status:        domain.CompetitivenessRed,
	}

	in := domain.DiagnosticInputs{
		Results:     results,
		ROASTarget:  floatPtr(8),
		DailyBudget: domain.UnlimitedBudget(),
		ItemsSold:   20,
	}

	result := Diagnose(in)

	assert.Equal(t, domain.StatusWarning, result.Status)
	assert.True(t, anyContains(result.PrimaryIssues, "pricing"))
	assert.True(t, anyContains(result.Recommendations, "cannot compete"))
}

func TestDiagnoseAboveTargetBudgetBranches(t *testing.T) {
	base := domain.DiagnosticInputs{
		Results:    healthyResults(),
		ROASTarget: floatPtr(8),
		ItemsSold:  20,
	}

	unlimited := base
	unlimited.DailyBudget = domain.UnlimitedBudget()
	assert.True(t, anyContains(Diagnose(unlimited).Recommendations, "uncapped"))

	monthly := base
	monthly.DailyBudget = domain.CappedBudget(80)
	monthly.HasMonthlyBudget = true
	assert.True(t, anyContains(Diagnose(monthly).Recommendations, "headroom: increase the daily cap"))

	capped := base
	capped.DailyBudget = domain.CappedBudget(80)
	assert.True(t, anyContains(Diagnose(capped).Recommendations, "maximize delivery"))
}

func TestDiagnoseBelowTargetReportsGap(t *testing.T) {
	results := healthyResults()
	results.ROAS = 6

	in := domain.DiagnosticInputs{
		Results:     results,
		ROASTarget:  floatPtr(10),
		DailyBudget: domain.CappedBudget(50),
		ItemsSold:   20,
	}

	result := Diagnose(in)

	assert.Equal(t, domain.ScenarioBelowTarget, result.Scenario)
	assert.Equal(t, domain.StatusWarning, result.Status)
	assert.True(t, anyContains(result.PrimaryIssues, "gap of 4.00"))
	// 6 < 0.7*10: spending should be limited, not continued.
	assert.True(t, anyContains(result.Recommendations, "Pause or sharply limit spend"))
}

func TestDiagnoseBelowTargetHoldsBudgetOnSmallGap(t *testing.T) {
	results := healthyResults()
	results.ROAS = 8

	in := domain.DiagnosticInputs{
		Results:     results,
		ROASTarget:  floatPtr(10),
		DailyBudget: domain.CappedBudget(50),
		ItemsSold:   20,
	}

	result := Diagnose(in)

	assert.Equal(t, domain.StatusWarning, result.Status)
	assert.True(t, anyContains(result.Recommendations, "Hold the current budget"))
}

func TestDiagnoseBelowTargetEscalatesToCritical(t *testing.T) {
	// Thin margin alongside the missed target: both problems reported.
	results := healthyResults()
	results.ROAS = 6
	results.MLL = 8

	in := domain.DiagnosticInputs{
		Results:     results,
		ROASTarget:  floatPtr(10),
		DailyBudget: domain.CappedBudget(50),
		ItemsSold:   20,
	}

	result := Diagnose(in)

	assert.Equal(t, domain.StatusCritical, result.Status)
	assert.True(t, anyContains(result.PrimaryIssues, "ROAS is 6.00"))
	assert.True(t, anyContains(result.PrimaryIssues, "margin problem on top of the ROAS problem"))
}

func TestDiagnoseNoSalesFunnelBranches(t *testing.T) {
	results := healthyResults()
	results.ROAS = 0

	cases := []struct {
		name        string
		impressions int
		clicks      int
		itemsSold   int
		wantIssue   string
	}{
		{"no delivery", 0, 0, 0, "zero impressions"},
		{"no clicks", 5000, 0, 0, "nobody clicks"},
		{"ctr far too low", 10000, 20, 0, "far below viable"},
		{"clicks but no conversion", 1000, 50, 0, "nobody buys"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := domain.DiagnosticInputs{
				Results:     results,
				DailyBudget: domain.CappedBudget(50),
				Impressions: tc.impressions,
				Clicks:      tc.clicks,
				ItemsSold:   tc.itemsSold,
			}

			result := Diagnose(in)

			assert.Equal(t, domain.ScenarioNoSales, result.Scenario)
			assert.Equal(t, domain.StatusCritical, result.Status)
			assert.True(t, anyContains(result.PrimaryIssues, tc.wantIssue),
				"expected an issue mentioning %q, got %v", tc.wantIssue, result.PrimaryIssues)
			assert.NotEmpty(t, result.ActionPlan.Immediate)
		})
	}
}

func TestDiagnoseNoSalesBranchesAreExclusive(t *testing.T) {
	results := healthyResults()
	results.ROAS = 0

	in := domain.DiagnosticInputs{
		Results:     results,
		DailyBudget: domain.CappedBudget(50),
		Impressions: 0,
	}

	result := Diagnose(in)

	// Only the delivery branch fires; later funnel stages stay silent.
	assert.False(t, anyContains(result.PrimaryIssues, "nobody clicks"))
	assert.False(t, anyContains(result.PrimaryIssues, "nobody buys"))
}

func TestDiagnoseVariableStatusBands(t *testing.T) {
	cases := []struct {
		name string
		mll  float64
		roas float64
		want domain.DiagnosticStatus
	}{
		{"healthy margin strong roas", 20, 12, domain.StatusGood},
		{"healthy margin weak roas", 20, 4, domain.StatusWarning},
		{"mid margin", 12, 8, domain.StatusWarning},
		{"mid margin weak roas", 12, 4, domain.StatusCritical},
		{"thin margin", 8, 12, domain.StatusCritical},
		{"thin margin weak roas", 8, 2, domain.StatusCritical},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			results := healthyResults()
			results.MLL = tc.mll
			results.ROAS = tc.roas

			in := domain.DiagnosticInputs{
				Results:     results,
				DailyBudget: domain.CappedBudget(50),
				Impressions: 5000,
				Clicks:      100,
				ItemsSold:   20,
			}

			result := Diagnose(in)

			assert.Equal(t, domain.ScenarioVariable, result.Scenario)
			assert.Equal(t, tc.want, result.Status)
			assert.True(t, anyContains(result.Recommendations, "derive one from the highest ACOS"),
				"variable scenario always suggests deriving a target")
		})
	}
}

func TestDiagnoseVariableTrafficRemarks(t *testing.T) {
	results := healthyResults()

	in := domain.DiagnosticInputs{
		Results:     results,
		DailyBudget: domain.CappedBudget(50),
		Impressions: 100000,
		Clicks:      200, // 0.2% CTR
		ItemsSold:   20,  // 10% conversion
	}

	result := Diagnose(in)

	assert.True(t, anyContains(result.Recommendations, "test new creatives"))
	assert.True(t, anyContains(result.Recommendations, "excellent"))
}

func TestMetricHeuristicsTriggers(t *testing.T) {
	results := healthyResults()
	results.MinPrice = 20
	results.MaxPrice = 40
	results.Competitiveness = &domain.Competitiveness{
		PVTargetMLL15: 35,
		Status:        domain.CompetitivenessYellow,
	}

	in := domain.DiagnosticInputs{
		Results:      results,
		Impressions:  20000,
		Clicks:       250, // CTR 1.25%
		ItemsSold:    2,   // conversion 0.8%
		RecentEvents: 4,
	}

	acc := newAdvice()
	applyMetricHeuristics(in, acc)

	assert.True(t, anyContains(acc.recommendations, "losing clicks to cheaper offers"))
	assert.True(t, anyContains(acc.recommendations, "revise the title and targeting"))
	assert.True(t, anyContains(acc.recommendations, "handle the main objections"))
	assert.True(t, anyContains(acc.recommendations, "bidding automation"))
	assert.True(t, anyContains(acc.issues, "Conversion is too low"))
	// CTR 1.25% is above the 1% issue threshold.
	assert.False(t, anyContains(acc.issues, "CTR is too low"))
}

func TestMetricHeuristicsCompetitivePriceBlamesCover(t *testing.T) {
	results := healthyResults()
	results.MinPrice = 30
	results.MaxPrice = 50
	results.Competitiveness = &domain.Competitiveness{
		PVTargetMLL15: 28,
		Status:        domain.CompetitivenessGreen,
	}

	in := domain.DiagnosticInputs{
		Results:     results,
		Impressions: 5000,
		Clicks:      50, // CTR 1%
		ItemsSold:   1,
	}

	acc := newAdvice()
	applyMetricHeuristics(in, acc)

	assert.True(t, anyContains(acc.recommendations, "cover image"))
	assert.False(t, anyContains(acc.recommendations, "losing clicks to cheaper offers"))
}

func TestMetricHeuristicsIdempotent(t *testing.T) {
	results := healthyResults()
	results.MinPrice = 20
	results.MaxPrice = 40
	results.Competitiveness = &domain.Competitiveness{
		PVTargetMLL15: 35,
		Status:        domain.CompetitivenessYellow,
	}

	in := domain.DiagnosticInputs{
		Results:      results,
		Impressions:  20000,
		Clicks:       250,
		ItemsSold:    2,
		RecentEvents: 4,
	}

	acc := newAdvice()
	applyMetricHeuristics(in, acc)
	issues, recommendations := len(acc.issues), len(acc.recommendations)

	applyMetricHeuristics(in, acc)

	assert.Len(t, acc.issues, issues, "second pass must not duplicate issues")
	assert.Len(t, acc.recommendations, recommendations, "second pass must not duplicate recommendations")
}

func TestDiagnoseDeterministicOrdering(t *testing.T) {
	results := healthyResults()
	results.ROAS = 6
	results.MLL = 8
	results.MinPrice = 20
	results.MaxPrice = 25
	results.Competitiveness = &domain.Competitiveness{
		PVTargetMLL15: 30,
		Status:        domain.CompetitivenessRed,
	}

	in := domain.DiagnosticInputs{
		Results:      results,
		ROASTarget:   floatPtr(10),
		DailyBudget:  domain.CappedBudget(50),
		Impressions:  20000,
		Clicks:       250,
		ItemsSold:    20,
		RecentEvents: 5,
	}

	first := Diagnose(in)
	second := Diagnose(in)

	require.Equal(t, first, second)
}

func TestDiagnoseEndToEndBaseline(t *testing.T) {
	// Full pipeline on the baseline inputs with a beaten target.
	results, err := CalculateMetrics(baselineInputs())
	require.NoError(t, err)

	result := Diagnose(domain.DiagnosticInputs{
		Results:     results,
		ROASTarget:  floatPtr(8),
		DailyBudget: domain.UnlimitedBudget(),
		Impressions: 5000,
		Clicks:      200,
		ItemsSold:   20,
	})

	assert.Equal(t, domain.ScenarioAboveTarget, result.Scenario)
	assert.Equal(t, domain.StatusExcellent, result.Status)
}
