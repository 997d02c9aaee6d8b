package usecase

import (
	"fmt"
	"strings"

	"adprofit/internal/domain"
)

// advice accumulates issues, recommendations and the three-horizon action
// plan while an analysis runs. Order of insertion is preserved; the Once
// variants skip appending when a message about the same topic is already
// present, so running a heuristic pass twice never duplicates output.
type advice struct {
	issues          []string
	recommendations []string
	immediate       []string
	shortTerm       []string
	monitoring      []string
}

func newAdvice() *advice {
	return &advice{
		issues:          []string{},
		recommendations: []string{},
		immediate:       []string{},
		shortTerm:       []string{},
		monitoring:      []string{},
	}
}

func mentions(list []string, topic string) bool {
	needle := strings.ToLower(topic)
	for _, msg := range list {
		if strings.Contains(strings.ToLower(msg), needle) {
			return true
		}
	}
	return false
}

func (a *advice) issue(msg string) {
	a.issueOnce(msg, msg)
}

func (a *advice) issueOnce(topic, msg string) {
	if mentions(a.issues, topic) {
		return
	}
	a.issues = append(a.issues, msg)
}

func (a *advice) recommend(msg string) {
	a.recommendOnce(msg, msg)
}

func (a *advice) recommendOnce(topic, msg string) {
	if mentions(a.recommendations, topic) {
		return
	}
	a.recommendations = append(a.recommendations, msg)
}

func ratePercent(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator) * 100
}

// Diagnose classifies the campaign into one of the four scenarios, runs the
// matching analyzer and finishes with the scenario-independent metric
// heuristics. It is total: every input yields a result, nothing errors.
func Diagnose(in domain.DiagnosticInputs) domain.DiagnosticResult {
	scenario := ClassifyScenario(in.ROASTarget, in.Results.ROAS, in.ItemsSold)

	acc := newAdvice()
	var status domain.DiagnosticStatus
	switch scenario {
	case domain.ScenarioAboveTarget:
		status = analyzeAboveTarget(in, acc)
	case domain.ScenarioBelowTarget:
		status = analyzeBelowTarget(in, acc)
	case domain.ScenarioNoSales:
		status = analyzeNoSales(in, acc)
	default:
		status = analyzeVariable(in, acc)
	}

	applyMetricHeuristics(in, acc)

	title, description := scenarioHeadline(scenario)
	return domain.DiagnosticResult{
		Scenario:            scenario,
		ScenarioTitle:       title,
		ScenarioDescription: description,
		Status:              status,
		PrimaryIssues:       acc.issues,
		Recommendations:     acc.recommendations,
		ActionPlan: domain.ActionPlan{
			Immediate:  acc.immediate,
			ShortTerm:  acc.shortTerm,
			Monitoring: acc.monitoring,
		},
	}
}

func scenarioHeadline(s domain.Scenario) (string, string) {
	switch s {
	case domain.ScenarioAboveTarget:
		return "Above target and selling",
			"The campaign beats its ROAS target with consistent sales."
	case domain.ScenarioBelowTarget:
		return "Selling below target",
			"Sales are happening, but the return on ad spend misses the target."
	case domain.ScenarioNoSales:
		return "No sales",
			"The campaign generates no attributed sales."
	default:
		return "No ROAS target defined",
			"Without a target, performance is judged on margin and efficiency bands."
	}
}

// applyMetricHeuristics layers scenario-independent CTR, conversion and
// price-position checks on top of whatever the scenario analyzer produced.
// Triggers are independent of each other, and each one appends at most once.
func applyMetricHeuristics(in domain.DiagnosticInputs, acc *advice) {
	ctr := ratePercent(in.Clicks, in.Impressions)
	conversion := ratePercent(in.ItemsSold, in.Clicks)

	if comp := in.Results.Competitiveness; comp != nil {
		avgPrice := (in.Results.MinPrice + in.Results.MaxPrice) / 2
		if comp.PVTargetMLL15 > avgPrice && ctr < 3 {
			acc.recommendOnce("losing clicks to cheaper offers", fmt.Sprintf(
				"The price needed for the margin target is above the market average of %.2f and CTR is %.2f%%: the ad is losing clicks to cheaper offers.",
				avgPrice, ctr))
		}
		if comp.PVTargetMLL15 <= in.Results.MinPrice && ctr < 3 {
			acc.recommendOnce("cover image", fmt.Sprintf(
				"The target price undercuts every competitor yet CTR is only %.2f%%: the price is fine, the cover image is the problem.",
				ctr))
		}
	}

	if in.Impressions >= 10000 && ctr < 1.5 {
		acc.recommendOnce("revise the title and targeting", fmt.Sprintf(
			"High reach (%d impressions) but few clicks (CTR %.2f%%): revise the title and targeting.",
			in.Impressions, ctr))
	}

	if in.Clicks >= 200 && conversion < 2 {
		acc.recommendOnce("handle the main objections", fmt.Sprintf(
			"Many clicks (%d) but only %.2f%% conversion: revise the product page and handle the main objections before buying more traffic.",
			in.Clicks, conversion))
	}

	if in.RecentEvents >= 3 {
		acc.recommendOnce("let the bidding automation stabilize", fmt.Sprintf(
			"%d manual configuration changes in the recent window: let the bidding automation stabilize before judging results.",
			in.RecentEvents))
	}

	if ctr < 1 && in.Impressions > 1000 {
		acc.issueOnce("ctr is too low", fmt.Sprintf(
			"CTR is too low: %.2f%% across %d impressions.", ctr, in.Impressions))
	}

	if in.Clicks >= 200 && conversion < 1 {
		acc.issueOnce("conversion is too low", fmt.Sprintf(
			"Conversion is too low: %.2f%% across %d clicks.", conversion, in.Clicks))
	}
}
