package handler

import (
	"encoding/json"
	"net/http"

	"github.com/renli/renli/pkg/errors"
	"github.com/renli/renli/pkg/model"
	"github.com/renli/renli/pkg/stats"
)

// StatsHandler 统计分析处理器
type StatsHandler struct {
	costAnalyzer *stats.CostAnalyzer
	capAnalyzer  *stats.CapacityAnalyzer
}

// NewStatsHandler 创建统计分析处理器
func NewStatsHandler() *StatsHandler {
	return &StatsHandler{
		costAnalyzer: stats.NewCostAnalyzer(),
		capAnalyzer:  stats.NewCapacityAnalyzer(),
	}
}

// AnalyzeRequest 分析请求：对既有求解结果做离线分析
type AnalyzeRequest struct {
	Parameters *model.PlanParameters `json:"parameters"`
	Result     *model.PlanResult     `json:"result"`
}

// AnalyzeResponse 分析响应
type AnalyzeResponse struct {
	Success  bool                  `json:"success"`
	Costs    *stats.CostBreakdown  `json:"costs"`
	Capacity *stats.CapacityReport `json:"capacity"`
	Variance *stats.BudgetVariance `json:"variance"`
}

// Analyze 生成成本构成、供需对照和预算差异
func (h *StatsHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if req.Parameters == nil || req.Result == nil {
		respondError(w, errors.New(errors.CodeInvalidInput, "缺少规划参数或求解结果"))
		return
	}
	if len(req.Result.Periods) != req.Parameters.Periods {
		respondError(w, errors.InvalidInput("result", "结果月数与参数不一致"))
		return
	}

	respondJSON(w, http.StatusOK, AnalyzeResponse{
		Success:  true,
		Costs:    h.costAnalyzer.Breakdown(req.Parameters, req.Result),
		Capacity: h.capAnalyzer.Analyze(req.Parameters, req.Result),
		Variance: stats.VarianceAgainstBudget(req.Parameters.Budget, req.Result.TotalCost),
	})
}
