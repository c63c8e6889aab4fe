// Package stats 提供规划结果的统计分析
package stats

import (
	"gonum.org/v1/gonum/floats"

	"github.com/renli/renli/pkg/model"
)

// CostItem 单项成本
type CostItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Share  float64 `json:"share"` // 占比 (%)
}

// CostBreakdown 成本构成
type CostBreakdown struct {
	HiringCost   float64    `json:"hiring_cost"`
	FiringCost   float64    `json:"firing_cost"`
	SalaryCost   float64    `json:"salary_cost"`
	OvertimeCost float64    `json:"overtime_cost"`
	PenaltyCost  float64    `json:"penalty_cost"`
	Total        float64    `json:"total"` // 含惩罚成本
	Items        []CostItem `json:"items"`
}

// CostAnalyzer 成本分析器
type CostAnalyzer struct{}

// NewCostAnalyzer 创建成本分析器
func NewCostAnalyzer() *CostAnalyzer {
	return &CostAnalyzer{}
}

// Breakdown 按成本类型拆分规划结果的总成本
func (a *CostAnalyzer) Breakdown(params *model.PlanParameters, result *model.PlanResult) *CostBreakdown {
	n := len(result.Periods)
	hired := make([]float64, n)
	fired := make([]float64, n)
	employees := make([]float64, n)
	overtime := make([]float64, n)
	unmet := make([]float64, n)
	for i, pp := range result.Periods {
		hired[i] = float64(pp.Hired)
		fired[i] = float64(pp.Fired)
		employees[i] = float64(pp.Employees)
		overtime[i] = pp.Overtime
		unmet[i] = pp.UnmetDemand
	}

	b := &CostBreakdown{
		HiringCost:   floats.Sum(hired) * params.HiringCost,
		FiringCost:   floats.Sum(fired) * params.FiringCost,
		SalaryCost:   floats.Sum(employees) * params.EffectiveSalaryCost,
		OvertimeCost: floats.Sum(overtime) * params.OvertimeCost,
		PenaltyCost:  floats.Sum(unmet) * params.PenaltyCost,
	}
	b.Total = b.HiringCost + b.FiringCost + b.SalaryCost + b.OvertimeCost + b.PenaltyCost

	items := []CostItem{
		{Name: "hiring", Amount: b.HiringCost},
		{Name: "firing", Amount: b.FiringCost},
		{Name: "salary", Amount: b.SalaryCost},
		{Name: "overtime", Amount: b.OvertimeCost},
		{Name: "penalty", Amount: b.PenaltyCost},
	}
	for i := range items {
		if b.Total > 0 {
			items[i].Share = items[i].Amount / b.Total * 100
		}
	}
	b.Items = items
	return b
}
