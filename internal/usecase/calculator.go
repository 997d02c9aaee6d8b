package usecase

import (
	"adprofit/internal/domain"
)

// Net-net margin every seller is steered toward; the competitiveness
// verdict asks whether this margin is reachable inside the market range.
const targetMarginPercent = 15.0

// CalculateMetrics derives the per-unit economics of a campaign period from
// raw counters and the seller's cost structure. Pure and deterministic:
// identical inputs always produce identical results.
//
// Two margins come out of it. MLB is profit over the sale price. MLL
// divides profit by the contribution base before product cost (pvReal minus
// commission, tax, fixed, operational and ad cost) rather than by the
// price. That base is what a sale leaves over to pay for the product, and
// it is the same base the price solver targets.
func CalculateMetrics(in domain.CalculationInputs) (domain.CalculationResults, error) {
	res, _, err := calculateMetrics(in)
	return res, err
}

func calculateMetrics(in domain.CalculationInputs) (domain.CalculationResults, *solverOutcome, error) {
	if err := in.Validate(); err != nil {
		return domain.CalculationResults{}, nil, err
	}

	items := float64(in.ItemsSold)
	pvReal := in.GMV / items
	adsPerItem := in.Investment / items

	// Tax applies only to the emitted fraction of the sale value.
	effectiveTaxPercent := in.TaxPercent * in.EmittedPercent / 100
	commissionRs := pvReal * in.CommissionPercent / 100
	taxRs := pvReal * effectiveTaxPercent / 100

	profitPerItem := pvReal - commissionRs - taxRs - in.FixedCostPerItem - in.ProductCost - in.OperationalCost - adsPerItem

	var mlb float64
	if pvReal != 0 {
		mlb = profitPerItem / pvReal * 100
	}

	baseMll := pvReal - commissionRs - taxRs - in.FixedCostPerItem - in.OperationalCost - adsPerItem
	var mll float64
	if baseMll > 0 {
		mll = profitPerItem / baseMll * 100
	}

	var roas float64
	if in.Investment > 0 {
		roas = in.GMV / in.Investment
	}
	var acos float64
	if in.GMV > 0 {
		acos = in.Investment / in.GMV * 100
	}

	res := domain.CalculationResults{
		PVReal:              pvReal,
		AdsPerItem:          adsPerItem,
		EffectiveTaxPercent: effectiveTaxPercent,
		CommissionRs:        commissionRs,
		TaxRs:               taxRs,
		ProfitPerItem:       profitPerItem,
		MLB:                 mlb,
		MLL:                 mll,
		ROAS:                roas,
		ACOS:                acos,
		// Single-campaign scope: total ad cost of sale equals ACOS.
		TACOS:    acos,
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
	}

	var outcome *solverOutcome
	if in.MinPrice > 0 && in.MaxPrice > 0 {
		solved := solvePriceForTargetMargin(
			targetMarginPercent,
			in.ProductCost,
			in.TaxPercent,
			in.EmittedPercent,
			in.OperationalCost,
			in.CommissionPercent,
			in.FixedCostPerItem,
			adsPerItem,
		)
		outcome = &solved
		comp := evaluateCompetitiveness(solved.price, in.MinPrice, in.MaxPrice)
		res.Competitiveness = &comp
	}

	return res, outcome, nil
}
