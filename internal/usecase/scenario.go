package usecase

import "adprofit/internal/domain"

// ClassifyScenario maps continuous ROAS and sales signals onto the four
// campaign scenarios. Evaluation is sequential first-match: a campaign that
// sells with a defined target is judged against that target before the
// no-sales and fallback rules are even considered.
func ClassifyScenario(roasTarget *float64, roas float64, itemsSold int) domain.Scenario {
	switch {
	case roasTarget != nil && roas >= *roasTarget && itemsSold > 0:
		return domain.ScenarioAboveTarget
	case roasTarget != nil && roas < *roasTarget && itemsSold > 0:
		return domain.ScenarioBelowTarget
	case itemsSold == 0 || roas == 0:
		return domain.ScenarioNoSales
	default:
		return domain.ScenarioVariable
	}
}
