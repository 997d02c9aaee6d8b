package usecase

import (
	"fmt"

	"adprofit/internal/domain"
)

// evaluateCompetitiveness judges the solved target price against the
// observed competitor range. It asks whether the product can ever reach the
// target margin while staying competitive, so the verdict is built from the
// solved price, never from the price actually charged.
func evaluateCompetitiveness(targetPrice, minPrice, maxPrice float64) domain.Competitiveness {
	avgPrice := (minPrice + maxPrice) / 2
	comp := domain.Competitiveness{PVTargetMLL15: targetPrice}

	switch {
	case targetPrice <= minPrice || targetPrice <= avgPrice:
		comp.Status = domain.CompetitivenessGreen
		comp.Message = fmt.Sprintf(
			"Competitive: a price of %.2f reaches the 15%% margin at or below the market average of %.2f.",
			targetPrice, avgPrice)
		comp.Suggestions = []string{
			"Hold the current price position; the margin target is reachable without losing competitiveness.",
		}

	case targetPrice <= maxPrice:
		comp.Status = domain.CompetitivenessYellow
		comp.Message = fmt.Sprintf(
			"The 15%% margin needs a price of %.2f, above the market average but still inside the observed range (%.2f - %.2f).",
			targetPrice, minPrice, maxPrice)
		comp.Suggestions = []string{
			fmt.Sprintf("Cut product or operational costs until the target price drops to the market average of %.2f.", avgPrice),
			"Alternatively accept a margin below 15% and price at or under the market average.",
		}

	default:
		comp.Status = domain.CompetitivenessRed
		comp.Message = fmt.Sprintf(
			"Not competitive: the 15%% margin needs a price of %.2f, above every observed competitor.",
			targetPrice)
		comp.Suggestions = []string{
			fmt.Sprintf("Reaching a 15%% margin requires charging %.2f, which no competitor charges.", targetPrice),
			fmt.Sprintf("To stay inside the market range the price cannot exceed %.2f.", maxPrice),
			"Reduce the cost structure or accept a lower margin target to stay viable.",
		}
	}

	return comp
}
