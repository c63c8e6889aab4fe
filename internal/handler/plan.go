// Package handler 提供HTTP请求处理器
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/renli/renli/internal/metrics"
	"github.com/renli/renli/pkg/errors"
	"github.com/renli/renli/pkg/model"
	"github.com/renli/renli/pkg/planner"
	"github.com/renli/renli/pkg/stats"
)

// PlanHandler 规划处理器
type PlanHandler struct {
	planner        *planner.Planner
	whatif         *planner.WhatIfRunner
	costAnalyzer   *stats.CostAnalyzer
	capAnalyzer    *stats.CapacityAnalyzer
	defaultTimeout time.Duration
	maxPeriods     int
	maxScenarios   int
}

// Options 处理器配置
type Options struct {
	WhatIfWorkers  int
	DefaultTimeout time.Duration
	MaxPeriods     int
	MaxScenarios   int
}

// NewPlanHandler 创建规划处理器
func NewPlanHandler(p *planner.Planner, opts Options) *PlanHandler {
	if opts.DefaultTimeout <= 0 {
		opts.DefaultTimeout = 30 * time.Second
	}
	if opts.MaxPeriods <= 0 {
		opts.MaxPeriods = 24
	}
	if opts.MaxScenarios <= 0 {
		opts.MaxScenarios = 20
	}
	return &PlanHandler{
		planner:        p,
		whatif:         planner.NewWhatIfRunner(p, opts.WhatIfWorkers),
		costAnalyzer:   stats.NewCostAnalyzer(),
		capAnalyzer:    stats.NewCapacityAnalyzer(),
		defaultTimeout: opts.DefaultTimeout,
		maxPeriods:     opts.MaxPeriods,
		maxScenarios:   opts.MaxScenarios,
	}
}

// SolveRequest 规划求解请求
type SolveRequest struct {
	Parameters *model.PlanParameters `json:"parameters"`
	Options    *SolveOptions         `json:"options,omitempty"`
}

// SolveOptions 求解选项
type SolveOptions struct {
	TimeoutSeconds int  `json:"timeout_seconds,omitempty"`
	WithAnalysis   bool `json:"with_analysis,omitempty"` // 结果附带成本与供需分析
}

// Analysis 结果分析
type Analysis struct {
	Costs    *stats.CostBreakdown  `json:"costs,omitempty"`
	Capacity *stats.CapacityReport `json:"capacity,omitempty"`
	Variance *stats.BudgetVariance `json:"variance,omitempty"`
}

// SolveResponse 规划求解响应
type SolveResponse struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message,omitempty"`
	Result   *model.PlanResult `json:"result"`
	Analysis *Analysis         `json:"analysis,omitempty"`
	Duration string            `json:"duration"`
}

// Solve 求解人力规划模型
func (h *PlanHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if req.Parameters == nil {
		respondError(w, errors.New(errors.CodeInvalidInput, "缺少规划参数"))
		return
	}
	if req.Parameters.Periods > h.maxPeriods {
		respondError(w, errors.InvalidInput("periods",
			fmt.Sprintf("规划月数不能超过 %d", h.maxPeriods)))
		return
	}

	timeout := h.defaultTimeout
	if req.Options != nil && req.Options.TimeoutSeconds > 0 {
		timeout = time.Duration(req.Options.TimeoutSeconds) * time.Second
	}
	solveCtx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	done := metrics.TrackActiveSolve()
	result, err := h.planner.Solve(solveCtx, req.Parameters)
	done()

	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			respondError(w, appErr)
			return
		}
		respondError(w, errors.Wrap(err, errors.CodeInternal, "规划求解失败"))
		return
	}

	metrics.RecordPlanSolve(h.planner.Engine(), string(result.Status), result.Duration)
	if result.Status.IsOptimal() {
		metrics.SetPlanOutcome(h.planner.Engine(), result.TotalCost, result.TotalUnmetDemand())
	}

	resp := SolveResponse{
		Success:  result.Status.IsOptimal(),
		Message:  statusMessage(result.Status),
		Result:   result,
		Duration: result.Duration.String(),
	}
	if result.Status.IsOptimal() && (req.Options == nil || req.Options.WithAnalysis) {
		resp.Analysis = h.analyze(req.Parameters, result)
	}
	respondJSON(w, http.StatusOK, resp)
}

// WhatIfRequest 场景批量求解请求
type WhatIfRequest struct {
	Scenarios []planner.Scenario `json:"scenarios"`
	Options   *SolveOptions      `json:"options,omitempty"`
}

// WhatIfScenarioResult 单场景响应
type WhatIfScenarioResult struct {
	Name    string            `json:"name"`
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Result  *model.PlanResult `json:"result,omitempty"`
}

// WhatIfResponse 场景批量求解响应
type WhatIfResponse struct {
	Success   bool                   `json:"success"`
	Scenarios []WhatIfScenarioResult `json:"scenarios"`
	Duration  string                 `json:"duration"`
}

// WhatIf 并行求解一批互相独立的场景
func (h *PlanHandler) WhatIf(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req WhatIfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if len(req.Scenarios) == 0 {
		respondError(w, errors.New(errors.CodeInvalidInput, "缺少场景列表"))
		return
	}
	if len(req.Scenarios) > h.maxScenarios {
		respondError(w, errors.InvalidInput("scenarios",
			fmt.Sprintf("单次最多 %d 个场景", h.maxScenarios)))
		return
	}
	for i, sc := range req.Scenarios {
		if sc.Parameters == nil {
			respondError(w, errors.InvalidInput("scenarios",
				fmt.Sprintf("场景 %d 缺少规划参数", i+1)))
			return
		}
		if sc.Parameters.Periods > h.maxPeriods {
			respondError(w, errors.InvalidInput("scenarios",
				fmt.Sprintf("场景 %d 规划月数不能超过 %d", i+1, h.maxPeriods)))
			return
		}
	}

	timeout := h.defaultTimeout
	if req.Options != nil && req.Options.TimeoutSeconds > 0 {
		timeout = time.Duration(req.Options.TimeoutSeconds) * time.Second
	}
	solveCtx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	start := time.Now()
	results := h.whatif.Run(solveCtx, req.Scenarios)

	resp := WhatIfResponse{
		Success:   true,
		Scenarios: make([]WhatIfScenarioResult, 0, len(results)),
		Duration:  time.Since(start).String(),
	}
	for _, res := range results {
		item := WhatIfScenarioResult{Name: res.Name}
		switch {
		case res.Err != nil:
			item.Message = res.Err.Error()
			resp.Success = false
		case res.Result != nil:
			item.Success = res.Result.Status.IsOptimal()
			item.Message = statusMessage(res.Result.Status)
			item.Result = res.Result
			if !item.Success {
				resp.Success = false
			}
		}
		resp.Scenarios = append(resp.Scenarios, item)
	}
	respondJSON(w, http.StatusOK, resp)
}

// analyze 生成结果分析
func (h *PlanHandler) analyze(params *model.PlanParameters, result *model.PlanResult) *Analysis {
	return &Analysis{
		Costs:    h.costAnalyzer.Breakdown(params, result),
		Capacity: h.capAnalyzer.Analyze(params, result),
		Variance: stats.VarianceAgainstBudget(params.Budget, result.TotalCost),
	}
}

// statusMessage 求解状态的用户可读描述
func statusMessage(status model.SolveStatus) string {
	switch status {
	case model.StatusOptimal:
		return "求得最优方案"
	case model.StatusInfeasible:
		return "无可行解：预算或增减员上限可能过紧"
	case model.StatusUnbounded:
		return "模型无界：请检查成本参数"
	default:
		return "求解器未能给出结论"
	}
}

// respondJSON 返回JSON响应
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 返回错误响应
func respondError(w http.ResponseWriter, err *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"code":    err.Code,
		"message": err.Message,
		"details": err.Details,
		"fields":  err.Fields,
	})
}
