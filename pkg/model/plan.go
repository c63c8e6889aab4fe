// Package model 定义人力规划引擎的核心数据模型
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/renli/renli/pkg/errors"
)

// SolveStatus 求解状态
type SolveStatus string

const (
	StatusOptimal    SolveStatus = "Optimal"    // 最优解
	StatusInfeasible SolveStatus = "Infeasible" // 无可行解
	StatusUnbounded  SolveStatus = "Unbounded"  // 无界
	StatusUndefined  SolveStatus = "Undefined"  // 未定义/求解器异常
)

// IsOptimal 检查是否求得最优解
func (s SolveStatus) IsOptimal() bool {
	return s == StatusOptimal
}

// PlanParameters 规划输入参数（按月规划，传入后不再修改）
type PlanParameters struct {
	Periods                 int       `json:"periods"`                    // 规划月数
	HiringCost              float64   `json:"hiring_cost"`                // 单人招聘成本
	FiringCost              float64   `json:"firing_cost"`                // 单人裁减成本
	OvertimeCost            float64   `json:"overtime_cost"`              // 每小时加班成本
	PenaltyCost             float64   `json:"penalty_cost"`               // 每小时缺口惩罚成本
	EffectiveSalaryCost     float64   `json:"effective_salary_cost"`      // 人均月有效薪资（多职级加权后）
	InitialEmployees        int       `json:"initial_employees"`          // 期初在岗人数
	MaxHirePerPeriod        int       `json:"max_hire_per_period"`        // 每月最大招聘人数
	MaxFirePerPeriod        int       `json:"max_fire_per_period"`        // 每月最大裁减人数
	OvertimeRatePerEmployee float64   `json:"overtime_rate_per_employee"` // 人均每月加班小时上限
	WorkingHoursPerEmployee float64   `json:"working_hours_per_employee"` // 人均每月正班小时
	Demand                  []float64 `json:"demand"`                     // 每月需求工时，长度等于 Periods
	Budget                  float64   `json:"budget"`                     // 总预算（不含惩罚成本）
	ServiceRate             float64   `json:"service_rate"`               // 服务水平 [0,1]
}

// Validate 校验规划参数，任何违反前置条件的输入在建模之前拒绝
func (p *PlanParameters) Validate() error {
	ve := &errors.ValidationErrors{}

	if p.Periods < 1 {
		ve.Add("periods", "规划月数必须大于等于1")
	}
	if p.HiringCost < 0 {
		ve.Add("hiring_cost", "招聘成本不能为负")
	}
	if p.FiringCost < 0 {
		ve.Add("firing_cost", "裁减成本不能为负")
	}
	if p.OvertimeCost < 0 {
		ve.Add("overtime_cost", "加班成本不能为负")
	}
	if p.PenaltyCost < 0 {
		ve.Add("penalty_cost", "惩罚成本不能为负")
	}
	if p.EffectiveSalaryCost < 0 {
		ve.Add("effective_salary_cost", "有效薪资不能为负")
	}
	if p.InitialEmployees < 0 {
		ve.Add("initial_employees", "期初人数不能为负")
	}
	if p.MaxHirePerPeriod < 0 {
		ve.Add("max_hire_per_period", "每月最大招聘人数不能为负")
	}
	if p.MaxFirePerPeriod < 0 {
		ve.Add("max_fire_per_period", "每月最大裁减人数不能为负")
	}
	if p.OvertimeRatePerEmployee < 0 {
		ve.Add("overtime_rate_per_employee", "加班小时上限不能为负")
	}
	if p.WorkingHoursPerEmployee <= 0 {
		ve.Add("working_hours_per_employee", "正班小时必须大于0")
	}
	if p.Budget < 0 {
		ve.Add("budget", "预算不能为负")
	}
	if p.ServiceRate < 0 || p.ServiceRate > 1 {
		ve.Add("service_rate", "服务水平必须在 [0,1] 范围内")
	}
	if p.Periods >= 1 && len(p.Demand) != p.Periods {
		ve.Add("demand", fmt.Sprintf("需求序列长度 %d 与规划月数 %d 不一致", len(p.Demand), p.Periods))
	}
	for i, d := range p.Demand {
		if d < 0 {
			ve.Add("demand", fmt.Sprintf("第 %d 月需求不能为负", i+1))
			break
		}
	}

	if ve.HasErrors() {
		return ve.ToAppError()
	}
	return nil
}

// Clone 返回参数的深拷贝，what-if 并行求解时各场景互不共享
func (p *PlanParameters) Clone() *PlanParameters {
	cp := *p
	cp.Demand = make([]float64, len(p.Demand))
	copy(cp.Demand, p.Demand)
	return &cp
}

// PeriodPlan 单月规划结果
type PeriodPlan struct {
	Month       int     `json:"month"` // 月份，从1开始
	Demand      float64 `json:"demand_hours"`
	Hired       int     `json:"hired"`
	Fired       int     `json:"fired"`
	Employees   int     `json:"employees"`
	Overtime    float64 `json:"overtime_hours"`
	UnmetDemand float64 `json:"unmet_demand_hours"`
}

// Capacity 返回当月总供给工时（正班+加班）
func (pp *PeriodPlan) Capacity(workingHours float64) float64 {
	return float64(pp.Employees)*workingHours + pp.Overtime
}

// PlanResult 规划求解结果，每次求解新建，之后只读
type PlanResult struct {
	RunID     uuid.UUID     `json:"run_id"`
	Status    SolveStatus   `json:"status"`
	TotalCost float64       `json:"total_cost"` // 目标值扣除惩罚成本后的预算口径成本
	Objective float64       `json:"objective"`  // 求解器目标值（含惩罚成本）
	Penalty   float64       `json:"penalty"`    // 惩罚成本部分 Σ 缺口×单位惩罚
	Periods   []*PeriodPlan `json:"periods"`
	Duration  time.Duration `json:"duration"`
}

// TotalUnmetDemand 返回各月缺口工时之和
func (r *PlanResult) TotalUnmetDemand() float64 {
	var total float64
	for _, pp := range r.Periods {
		total += pp.UnmetDemand
	}
	return total
}

// TotalHired 返回各月招聘人数之和
func (r *PlanResult) TotalHired() int {
	var total int
	for _, pp := range r.Periods {
		total += pp.Hired
	}
	return total
}

// TotalFired 返回各月裁减人数之和
func (r *PlanResult) TotalFired() int {
	var total int
	for _, pp := range r.Periods {
		total += pp.Fired
	}
	return total
}
