package model

import (
	"testing"

	"github.com/renli/renli/pkg/errors"
)

// validParams 返回一组合法的规划参数
func validParams() *PlanParameters {
	return &PlanParameters{
		Periods:                 3,
		HiringCost:              1000,
		FiringCost:              1000,
		OvertimeCost:            75,
		PenaltyCost:             100,
		EffectiveSalaryCost:     5000,
		InitialEmployees:        10,
		MaxHirePerPeriod:        10,
		MaxFirePerPeriod:        5,
		OvertimeRatePerEmployee: 10,
		WorkingHoursPerEmployee: 166,
		Demand:                  []float64{1660, 1700, 1500},
		Budget:                  200000,
		ServiceRate:             0.95,
	}
}

func TestPlanParameters_Validate(t *testing.T) {
	if err := validParams().Validate(); err != nil {
		t.Fatalf("Valid params rejected: %v", err)
	}
}

func TestPlanParameters_ValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PlanParameters)
	}{
		{"零规划月数", func(p *PlanParameters) { p.Periods = 0 }},
		{"负招聘成本", func(p *PlanParameters) { p.HiringCost = -1 }},
		{"负裁减成本", func(p *PlanParameters) { p.FiringCost = -0.5 }},
		{"负惩罚成本", func(p *PlanParameters) { p.PenaltyCost = -100 }},
		{"负有效薪资", func(p *PlanParameters) { p.EffectiveSalaryCost = -1 }},
		{"负期初人数", func(p *PlanParameters) { p.InitialEmployees = -1 }},
		{"零正班小时", func(p *PlanParameters) { p.WorkingHoursPerEmployee = 0 }},
		{"负预算", func(p *PlanParameters) { p.Budget = -1 }},
		{"服务水平越界", func(p *PlanParameters) { p.ServiceRate = 1.5 }},
		{"需求长度不符", func(p *PlanParameters) { p.Demand = []float64{1660} }},
		{"负需求", func(p *PlanParameters) { p.Demand[1] = -10 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			tc.mutate(p)
			err := p.Validate()
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if errors.GetCode(err) != errors.CodeValidationFail {
				t.Errorf("Expected VALIDATION_FAILED, got %s", errors.GetCode(err))
			}
		})
	}
}

func TestPlanParameters_Clone(t *testing.T) {
	p := validParams()
	cp := p.Clone()

	cp.Demand[0] = 9999
	cp.Budget = 1

	if p.Demand[0] == 9999 {
		t.Error("Clone should not share demand slice")
	}
	if p.Budget == 1 {
		t.Error("Clone should not share scalar fields")
	}
}

func TestPeriodPlan_Capacity(t *testing.T) {
	pp := &PeriodPlan{Employees: 10, Overtime: 20}

	// 10人 × 166小时 + 20小时加班
	if got := pp.Capacity(166); got != 1680 {
		t.Errorf("Expected capacity 1680, got %.1f", got)
	}
}

func TestPlanResult_Totals(t *testing.T) {
	r := &PlanResult{
		Periods: []*PeriodPlan{
			{Month: 1, Hired: 2, Fired: 0, UnmetDemand: 100},
			{Month: 2, Hired: 0, Fired: 1, UnmetDemand: 0},
			{Month: 3, Hired: 1, Fired: 0, UnmetDemand: 50},
		},
	}

	if got := r.TotalUnmetDemand(); got != 150 {
		t.Errorf("Expected total unmet demand 150, got %.1f", got)
	}
	if got := r.TotalHired(); got != 3 {
		t.Errorf("Expected total hired 3, got %d", got)
	}
	if got := r.TotalFired(); got != 1 {
		t.Errorf("Expected total fired 1, got %d", got)
	}
}

func TestSolveStatus_IsOptimal(t *testing.T) {
	if !StatusOptimal.IsOptimal() {
		t.Error("Optimal should be optimal")
	}
	for _, s := range []SolveStatus{StatusInfeasible, StatusUnbounded, StatusUndefined} {
		if s.IsOptimal() {
			t.Errorf("%s should not be optimal", s)
		}
	}
}
