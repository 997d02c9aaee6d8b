package usecase

import (
	"testing"

	"adprofit/internal/domain"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestClassifyScenario(t *testing.T) {
	cases := []struct {
		name      string
		target    *float64
		roas      float64
		itemsSold int
		want      domain.Scenario
	}{
		{"above target selling", floatPtr(10), 12, 5, domain.ScenarioAboveTarget},
		{"exactly on target", floatPtr(10), 10, 5, domain.ScenarioAboveTarget},
		{"below target selling", floatPtr(10), 6, 5, domain.ScenarioBelowTarget},
		{"zero roas with sales and target", floatPtr(10), 0, 5, domain.ScenarioBelowTarget},
		{"no sales with target", floatPtr(10), 4, 0, domain.ScenarioNoSales},
		{"no sales without target", nil, 4, 0, domain.ScenarioNoSales},
		{"zero roas without target", nil, 0, 5, domain.ScenarioNoSales},
		{"no target selling", nil, 7, 5, domain.ScenarioVariable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyScenario(tc.target, tc.roas, tc.itemsSold)
			assert.Equal(t, tc.want, got)
		})
	}
}
