package planner

import (
	"fmt"

	"github.com/renli/renli/pkg/model"
	"github.com/renli/renli/pkg/planner/engine"
)

// 每月五组决策变量：招聘、裁减、在岗、加班、缺口
const varFamilies = 5

// varIndex 决策变量列号布局。
// 列按变量族分段：[0,p) 招聘，[p,2p) 裁减，[2p,3p) 在岗，
// [3p,4p) 加班，[4p,5p) 缺口。
type varIndex struct {
	periods int
}

func (v varIndex) hired(i int) int       { return i }
func (v varIndex) fired(i int) int       { return v.periods + i }
func (v varIndex) employees(i int) int   { return 2*v.periods + i }
func (v varIndex) overtime(i int) int    { return 3*v.periods + i }
func (v varIndex) unmetDemand(i int) int { return 4*v.periods + i }

// buildModel 将规划参数构造为混合整数线性规划模型。
// 所有决策变量均为非负整数；在岗人数虽由平衡等式唯一确定，
// 但仍以变量加等式约束的形式交给求解器。
func buildModel(p *model.PlanParameters) (*engine.Model, varIndex) {
	m := &engine.Model{}
	idx := varIndex{periods: p.Periods}

	// 决策变量，目标系数即各自的单位成本
	for i := 0; i < p.Periods; i++ {
		m.AddColumn(fmt.Sprintf("hired_%d", i), p.HiringCost, 0, engine.Inf(), engine.Integer)
	}
	for i := 0; i < p.Periods; i++ {
		m.AddColumn(fmt.Sprintf("fired_%d", i), p.FiringCost, 0, engine.Inf(), engine.Integer)
	}
	for i := 0; i < p.Periods; i++ {
		m.AddColumn(fmt.Sprintf("employees_%d", i), p.EffectiveSalaryCost, 0, engine.Inf(), engine.Integer)
	}
	for i := 0; i < p.Periods; i++ {
		m.AddColumn(fmt.Sprintf("overtime_%d", i), p.OvertimeCost, 0, engine.Inf(), engine.Integer)
	}
	for i := 0; i < p.Periods; i++ {
		m.AddColumn(fmt.Sprintf("unmet_%d", i), p.PenaltyCost, 0, engine.Inf(), engine.Integer)
	}

	for i := 0; i < p.Periods; i++ {
		// 人员平衡：E[0] = 期初 + H[0] - F[0]；E[i] = E[i-1] + H[i] - F[i]
		if i == 0 {
			m.AddSparseRow(fmt.Sprintf("balance_%d", i),
				float64(p.InitialEmployees),
				[]int{idx.employees(i), idx.hired(i), idx.fired(i)},
				[]float64{1, -1, 1},
				float64(p.InitialEmployees))
		} else {
			m.AddSparseRow(fmt.Sprintf("balance_%d", i),
				0,
				[]int{idx.employees(i), idx.employees(i - 1), idx.hired(i), idx.fired(i)},
				[]float64{1, -1, -1, 1},
				0)
		}

		// 供需覆盖：正班 + 加班 + 缺口 ≥ 需求 × 服务水平
		m.AddSparseRow(fmt.Sprintf("coverage_%d", i),
			p.Demand[i]*p.ServiceRate,
			[]int{idx.employees(i), idx.overtime(i), idx.unmetDemand(i)},
			[]float64{p.WorkingHoursPerEmployee, 1, 1},
			engine.Inf())

		// 每月招聘、裁减上限
		m.AddSparseRow(fmt.Sprintf("hire_cap_%d", i),
			engine.NegInf(),
			[]int{idx.hired(i)},
			[]float64{1},
			float64(p.MaxHirePerPeriod))
		m.AddSparseRow(fmt.Sprintf("fire_cap_%d", i),
			engine.NegInf(),
			[]int{idx.fired(i)},
			[]float64{1},
			float64(p.MaxFirePerPeriod))

		// 加班上限与在岗人数挂钩：O[i] ≤ E[i] × 人均加班上限
		m.AddSparseRow(fmt.Sprintf("overtime_cap_%d", i),
			engine.NegInf(),
			[]int{idx.overtime(i), idx.employees(i)},
			[]float64{1, -p.OvertimeRatePerEmployee},
			0)

		// 缺口下界：U[i] ≥ 需求 - (正班 + 加班)。
		// 注意覆盖约束用 服务水平×需求 而这里用原始需求，二者同时生效，
		// 服务水平小于1时缺口仍按未打折的需求记账。
		m.AddSparseRow(fmt.Sprintf("shortfall_%d", i),
			p.Demand[i],
			[]int{idx.unmetDemand(i), idx.employees(i), idx.overtime(i)},
			[]float64{1, p.WorkingHoursPerEmployee, 1},
			engine.Inf())
	}

	// 预算约束：全周期招聘+裁减+薪资+加班成本不超预算，惩罚成本不计入
	budgetCols := make([]int, 0, 4*p.Periods)
	budgetVals := make([]float64, 0, 4*p.Periods)
	for i := 0; i < p.Periods; i++ {
		budgetCols = append(budgetCols,
			idx.hired(i), idx.fired(i), idx.employees(i), idx.overtime(i))
		budgetVals = append(budgetVals,
			p.HiringCost, p.FiringCost, p.EffectiveSalaryCost, p.OvertimeCost)
	}
	m.AddSparseRow("budget", engine.NegInf(), budgetCols, budgetVals, p.Budget)

	return m, idx
}
