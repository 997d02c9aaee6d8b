package usecase

import "math"

// Newton iteration tuning. The manual step and the degenerate-derivative
// threshold are empirically chosen; changing them changes which price the
// solver lands on for flat cost structures, so they stay as-is.
const (
	solverMaxIterations   = 120
	solverTolerance       = 1e-4
	solverDerivativeStep  = 0.01
	solverDerivativeFloor = 0.001
	solverManualStep      = 0.5
	solverInitialFactor   = 2.5
	solverPriceFloor      = 1.05
	infeasibleMargin      = -100
)

type solverOutcome struct {
	price      float64
	iterations int
	converged  bool
}

// SolvePriceForTargetMargin finds the sale price at which the net-net margin
// (profit over the pre-product-cost contribution base) hits targetMll
// percent. The margin has no closed-form inverse in price: tax and
// commission scale with price while fixed costs do not, and the sign of the
// contribution base itself depends on price. A safeguarded Newton iteration
// with a forward-difference derivative is used instead.
//
// The result is best effort: it is always finite and at least
// productCost*1.05, but precision is not guaranteed on pathological cost
// structures where the iteration budget runs out.
func SolvePriceForTargetMargin(targetMll, productCost, taxPercent, emittedPercent, operationalCost, commissionPercent, fixedCostPerItem, adsPerItem float64) float64 {
	return solvePriceForTargetMargin(targetMll, productCost, taxPercent, emittedPercent, operationalCost, commissionPercent, fixedCostPerItem, adsPerItem).price
}

func solvePriceForTargetMargin(targetMll, productCost, taxPercent, emittedPercent, operationalCost, commissionPercent, fixedCostPerItem, adsPerItem float64) solverOutcome {
	effectiveTaxPercent := taxPercent * emittedPercent / 100

	marginAt := func(price float64) float64 {
		commission := price * commissionPercent / 100
		tax := price * effectiveTaxPercent / 100
		base := price - commission - tax - fixedCostPerItem - operationalCost - adsPerItem
		if base <= 0 {
			// Infeasible region: report a margin bad enough to push the
			// search back toward higher prices.
			return infeasibleMargin
		}
		profit := base - productCost
		return profit / base * 100
	}

	residual := func(price float64) float64 {
		return marginAt(price) - targetMll
	}

	floor := productCost * solverPriceFloor
	price := productCost * solverInitialFactor

	for i := 0; i < solverMaxIterations; i++ {
		f := residual(price)
		if math.Abs(f) < solverTolerance {
			return solverOutcome{price: price, iterations: i, converged: true}
		}

		derivative := (residual(price+solverDerivativeStep) - f) / solverDerivativeStep
		if math.Abs(derivative) < solverDerivativeFloor {
			// Near-flat residual: a Newton step would divide by almost
			// zero, so walk a fixed step toward shrinking the residual.
			if f > 0 {
				price -= solverManualStep
			} else {
				price += solverManualStep
			}
		} else {
			price -= f / derivative
		}

		if price < floor {
			price = floor
		}
	}

	return solverOutcome{price: price, iterations: solverMaxIterations, converged: false}
}
