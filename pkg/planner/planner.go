// Package planner 实现人力规划核心：将月度人员配置决策建模为
// 成本最小化的混合整数线性规划，提交求解引擎并归一化结果。
package planner

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/renli/renli/pkg/errors"
	"github.com/renli/renli/pkg/logger"
	"github.com/renli/renli/pkg/model"
	"github.com/renli/renli/pkg/planner/engine"
)

// Planner 规划求解器。
// 每次 Solve 独立构建模型实例，多个 Planner 或多次调用之间不共享可变状态。
type Planner struct {
	engine    engine.Engine
	logger    *logger.PlannerLogger
	timeLimit time.Duration
}

// New 创建规划求解器
func New(eng engine.Engine) *Planner {
	return &Planner{
		engine: eng,
		logger: logger.NewPlannerLogger(),
	}
}

// SetTimeLimit 设置求解时间上限，透传给引擎
func (pl *Planner) SetTimeLimit(d time.Duration) {
	pl.timeLimit = d
}

// Engine 返回所用引擎名称
func (pl *Planner) Engine() string {
	return pl.engine.Name()
}

// Solve 求解人力规划模型。
// 非法参数在建模前即被拒绝；非最优状态不是错误，
// 以结果中的 Status 字段返回，由调用方分支处理。
func (pl *Planner) Solve(ctx context.Context, params *model.PlanParameters) (*model.PlanResult, error) {
	start := time.Now()
	runID := uuid.New()

	if err := params.Validate(); err != nil {
		return nil, err
	}

	m, idx := buildModel(params)
	pl.logger.SolveStarted(runID.String(), params.Periods, m.NumCols(), m.NumRows())

	sol, err := pl.engine.Solve(ctx, m, engine.Options{TimeLimit: pl.timeLimit})
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(err, errors.CodeTimeout, "求解超时或已取消")
		}
		return nil, errors.SolverError(pl.engine.Name(), err)
	}

	result := pl.extract(runID, params, idx, sol)
	result.Duration = time.Since(start)

	if result.Status.IsOptimal() {
		pl.logger.SolveFinished(runID.String(), string(result.Status), result.Duration, result.TotalCost)
	} else {
		pl.logger.NonOptimal(runID.String(), string(result.Status))
	}
	return result, nil
}

// extract 从求解器输出提取归一化结果。
// 缺失取值一律按0处理，整数变量按四舍五入取整；
// 报告的 TotalCost 为目标值扣除惩罚成本，与预算口径一致。
func (pl *Planner) extract(runID uuid.UUID, params *model.PlanParameters, idx varIndex, sol *engine.Solution) *model.PlanResult {
	periods := make([]*model.PeriodPlan, params.Periods)
	var penalty float64

	for i := 0; i < params.Periods; i++ {
		unmet := math.Round(sol.Value(idx.unmetDemand(i)))
		periods[i] = &model.PeriodPlan{
			Month:       i + 1,
			Demand:      params.Demand[i],
			Hired:       int(math.Round(sol.Value(idx.hired(i)))),
			Fired:       int(math.Round(sol.Value(idx.fired(i)))),
			Employees:   int(math.Round(sol.Value(idx.employees(i)))),
			Overtime:    math.Round(sol.Value(idx.overtime(i))),
			UnmetDemand: unmet,
		}
		penalty += unmet * params.PenaltyCost
	}

	return &model.PlanResult{
		RunID:     runID,
		Status:    mapSolveStatus(sol.Status),
		TotalCost: sol.Objective - penalty,
		Objective: sol.Objective,
		Penalty:   penalty,
		Periods:   periods,
	}
}

// mapSolveStatus 引擎状态转结果状态（逐一对应，原样上报）
func mapSolveStatus(s engine.Status) model.SolveStatus {
	switch s {
	case engine.StatusOptimal:
		return model.StatusOptimal
	case engine.StatusInfeasible:
		return model.StatusInfeasible
	case engine.StatusUnbounded:
		return model.StatusUnbounded
	default:
		return model.StatusUndefined
	}
}
