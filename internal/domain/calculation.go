package domain

import "fmt"

// Raw campaign counters and seller cost structure for one analysis period.
// All currency values share the same unit; percents are 0-100.
type CalculationInputs struct {
	GMV               float64 `json:"gmv"`
	ItemsSold         int     `json:"items_sold"`
	Investment        float64 `json:"investment"`
	ProductCost       float64 `json:"product_cost"`
	TaxPercent        float64 `json:"tax_percent"`
	EmittedPercent    float64 `json:"emitted_percent"`
	OperationalCost   float64 `json:"operational_cost"`
	CommissionPercent float64 `json:"commission_percent"`
	FixedCostPerItem  float64 `json:"fixed_cost_per_item"`

	// Observed competitor price range. Both must be positive for the
	// competitiveness evaluation to run.
	MinPrice float64 `json:"min_price,omitempty"`
	MaxPrice float64 `json:"max_price,omitempty"`
}

// Validate rejects inputs that would make the per-item metrics undefined.
func (in CalculationInputs) Validate() error {
	if in.ItemsSold == 0 {
		return fmt.Errorf("%w: items sold must be greater than zero", ErrInvalidInput)
	}
	return nil
}

// Immutable snapshot of derived unit economics. Recomputed from scratch on
// every input change, never mutated.
type CalculationResults struct {
	PVReal              float64 `json:"pv_real"`
	AdsPerItem          float64 `json:"ads_per_item"`
	EffectiveTaxPercent float64 `json:"effective_tax_percent"`
	CommissionRs        float64 `json:"commission_rs"`
	TaxRs               float64 `json:"tax_rs"`
	ProfitPerItem       float64 `json:"profit_per_item"`
	MLB                 float64 `json:"mlb"`
	MLL                 float64 `json:"mll"`
	ROAS                float64 `json:"roas"`
	ACOS                float64 `json:"acos"`
	TACOS               float64 `json:"tacos"`

	MinPrice float64 `json:"min_price,omitempty"`
	MaxPrice float64 `json:"max_price,omitempty"`

	// Present only when a competitor price range was supplied.
	Competitiveness *Competitiveness `json:"competitiveness,omitempty"`
}

type CompetitivenessStatus string

const (
	CompetitivenessGreen  CompetitivenessStatus = "green"
	CompetitivenessYellow CompetitivenessStatus = "yellow"
	CompetitivenessRed    CompetitivenessStatus = "red"
)

// Competitiveness answers whether the product can reach the target net
// margin while staying inside the observed market price range. It is built
// from the solved target price, not the realized one.
type Competitiveness struct {
	PVTargetMLL15 float64               `json:"pv_target_mll15"`
	Status        CompetitivenessStatus `json:"status"`
	Message       string                `json:"message"`
	Suggestions   []string              `json:"suggestions"`
}
