package stats

import (
	"math"
	"testing"

	"github.com/renli/renli/pkg/model"
)

func statsParams() *model.PlanParameters {
	return &model.PlanParameters{
		Periods:                 2,
		HiringCost:              1000,
		FiringCost:              800,
		OvertimeCost:            75,
		PenaltyCost:             100,
		EffectiveSalaryCost:     5000,
		WorkingHoursPerEmployee: 166,
		Demand:                  []float64{1700, 2000},
		Budget:                  120000,
	}
}

func statsResult() *model.PlanResult {
	return &model.PlanResult{
		Status: model.StatusOptimal,
		Periods: []*model.PeriodPlan{
			{Month: 1, Demand: 1700, Hired: 1, Fired: 0, Employees: 11, Overtime: 0, UnmetDemand: 0},
			{Month: 2, Demand: 2000, Hired: 0, Fired: 0, Employees: 11, Overtime: 110, UnmetDemand: 64},
		},
	}
}

func TestCostAnalyzer_Breakdown(t *testing.T) {
	b := NewCostAnalyzer().Breakdown(statsParams(), statsResult())

	if b.HiringCost != 1000 {
		t.Errorf("Expected hiring cost 1000, got %.1f", b.HiringCost)
	}
	if b.FiringCost != 0 {
		t.Errorf("Expected firing cost 0, got %.1f", b.FiringCost)
	}
	// (11+11) × 5000
	if b.SalaryCost != 110000 {
		t.Errorf("Expected salary cost 110000, got %.1f", b.SalaryCost)
	}
	// 110 × 75
	if b.OvertimeCost != 8250 {
		t.Errorf("Expected overtime cost 8250, got %.1f", b.OvertimeCost)
	}
	// 64 × 100
	if b.PenaltyCost != 6400 {
		t.Errorf("Expected penalty cost 6400, got %.1f", b.PenaltyCost)
	}
	if b.Total != 125650 {
		t.Errorf("Expected total 125650, got %.1f", b.Total)
	}
}

func TestCostAnalyzer_SharesSumTo100(t *testing.T) {
	b := NewCostAnalyzer().Breakdown(statsParams(), statsResult())

	var sum float64
	for _, item := range b.Items {
		if item.Share < 0 {
			t.Errorf("Negative share for %s", item.Name)
		}
		sum += item.Share
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("Shares should sum to 100, got %.6f", sum)
	}
}

func TestCostAnalyzer_EmptyResult(t *testing.T) {
	b := NewCostAnalyzer().Breakdown(statsParams(), &model.PlanResult{})

	if b.Total != 0 {
		t.Errorf("Empty result should cost 0, got %.1f", b.Total)
	}
	for _, item := range b.Items {
		if item.Share != 0 {
			t.Errorf("Empty result should have zero shares, got %.1f for %s", item.Share, item.Name)
		}
	}
}
