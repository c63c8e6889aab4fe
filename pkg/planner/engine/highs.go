package engine

import (
	"context"

	"github.com/lanl/highs"
)

// HiGHSEngine 基于 HiGHS 求解器的引擎实现
type HiGHSEngine struct{}

// NewHiGHS 创建 HiGHS 引擎
func NewHiGHS() *HiGHSEngine {
	return &HiGHSEngine{}
}

// Name 返回引擎名称
func (e *HiGHSEngine) Name() string {
	return "highs"
}

// Solve 将模型描述翻译为 HiGHS 模型并求解。
// HiGHS 求解过程不可中断，上下文仅在求解前检查；
// TimeLimit 由调用方配置，这里不额外强制。
func (e *HiGHSEngine) Solve(ctx context.Context, m *Model, opts Options) (*Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lp := &highs.Model{
		ColCosts: m.ColCosts,
		ColLower: m.ColLower,
		ColUpper: m.ColUpper,
		RowLower: m.RowLower,
		RowUpper: m.RowUpper,
		Offset:   m.Offset,
	}

	lp.VarTypes = make([]highs.VariableType, len(m.ColTypes))
	for i, vt := range m.ColTypes {
		if vt == Integer {
			lp.VarTypes[i] = highs.IntegerType
		} else {
			lp.VarTypes[i] = highs.ContinuousType
		}
	}

	lp.ConstMatrix = make([]highs.Nonzero, len(m.ConstMatrix))
	for i, nz := range m.ConstMatrix {
		lp.ConstMatrix[i] = highs.Nonzero{Row: nz.Row, Col: nz.Col, Val: nz.Val}
	}

	sol, err := lp.Solve()
	if err != nil {
		return nil, err
	}

	return &Solution{
		Status:       mapStatus(sol.Status),
		Objective:    sol.Objective,
		ColumnPrimal: sol.ColumnPrimal,
	}, nil
}

// mapStatus 将 HiGHS 状态映射为引擎状态分类
func mapStatus(s highs.ModelStatus) Status {
	switch s {
	case highs.Optimal:
		return StatusOptimal
	case highs.Infeasible:
		return StatusInfeasible
	case highs.Unbounded, highs.UnboundedOrInfeasible:
		return StatusUnbounded
	default:
		return StatusUndefined
	}
}
