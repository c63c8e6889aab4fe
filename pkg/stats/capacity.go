package stats

import (
	"gonum.org/v1/gonum/floats"

	"github.com/renli/renli/pkg/model"
)

// CapacityPoint 单月供给与需求
type CapacityPoint struct {
	Month     int     `json:"month"`
	Capacity  float64 `json:"capacity_hours"` // 正班 + 加班
	Demand    float64 `json:"demand_hours"`
	Shortfall float64 `json:"shortfall_hours"` // 缺口工时
}

// CapacityReport 供需对照报告
type CapacityReport struct {
	Points           []CapacityPoint `json:"points"`
	PeakDemand       float64         `json:"peak_demand_hours"`
	ShortfallPeriods int             `json:"shortfall_periods"`
	TotalShortfall   float64         `json:"total_shortfall_hours"`
}

// BudgetVariance 预算差异
type BudgetVariance struct {
	Budget     float64 `json:"budget"`
	TotalCost  float64 `json:"total_cost"`
	Variance   float64 `json:"variance"`         // 预算 - 成本，正值为结余
	Percent    float64 `json:"variance_percent"` // 占预算比例 (%)
	OverBudget bool    `json:"over_budget"`
}

// CapacityAnalyzer 供需分析器
type CapacityAnalyzer struct{}

// NewCapacityAnalyzer 创建供需分析器
func NewCapacityAnalyzer() *CapacityAnalyzer {
	return &CapacityAnalyzer{}
}

// Analyze 生成逐月供给与需求对照
func (a *CapacityAnalyzer) Analyze(params *model.PlanParameters, result *model.PlanResult) *CapacityReport {
	report := &CapacityReport{
		Points: make([]CapacityPoint, 0, len(result.Periods)),
	}

	demands := make([]float64, 0, len(result.Periods))
	for _, pp := range result.Periods {
		point := CapacityPoint{
			Month:     pp.Month,
			Capacity:  pp.Capacity(params.WorkingHoursPerEmployee),
			Demand:    pp.Demand,
			Shortfall: pp.UnmetDemand,
		}
		if point.Shortfall > 0 {
			report.ShortfallPeriods++
			report.TotalShortfall += point.Shortfall
		}
		report.Points = append(report.Points, point)
		demands = append(demands, pp.Demand)
	}

	if len(demands) > 0 {
		report.PeakDemand = floats.Max(demands)
	}
	return report
}

// VarianceAgainstBudget 计算成本相对预算的差异
func VarianceAgainstBudget(budget, totalCost float64) *BudgetVariance {
	v := &BudgetVariance{
		Budget:     budget,
		TotalCost:  totalCost,
		Variance:   budget - totalCost,
		OverBudget: totalCost > budget,
	}
	if budget > 0 {
		v.Percent = v.Variance / budget * 100
	}
	return v
}
