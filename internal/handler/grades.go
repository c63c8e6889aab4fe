package handler

import (
	"encoding/json"
	"net/http"

	"github.com/renli/renli/pkg/errors"
	"github.com/renli/renli/pkg/grades"
)

// GradesHandler 职级汇总处理器
type GradesHandler struct{}

// NewGradesHandler 创建职级汇总处理器
func NewGradesHandler() *GradesHandler {
	return &GradesHandler{}
}

// AggregateRequest 职级汇总请求
type AggregateRequest struct {
	Grades  []grades.Grade `json:"grades"`
	Periods int            `json:"periods,omitempty"` // 大于0时同时返回自动预算
}

// AggregateResponse 职级汇总响应
type AggregateResponse struct {
	Success             bool    `json:"success"`
	InitialEmployees    int     `json:"initial_employees"`
	EffectiveSalaryCost float64 `json:"effective_salary_cost"`
	AutoBudget          float64 `json:"auto_budget,omitempty"`
}

// Aggregate 汇总职级结构为规划核心的标量输入
func (h *GradesHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req AggregateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if len(req.Grades) == 0 {
		respondError(w, errors.New(errors.CodeInvalidInput, "缺少职级列表"))
		return
	}

	agg, err := grades.Aggregate(req.Grades)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			respondError(w, appErr)
			return
		}
		respondError(w, errors.Wrap(err, errors.CodeInternal, "职级汇总失败"))
		return
	}

	resp := AggregateResponse{
		Success:             true,
		InitialEmployees:    agg.InitialEmployees,
		EffectiveSalaryCost: agg.EffectiveSalaryCost,
	}
	if req.Periods > 0 {
		resp.AutoBudget = grades.AutoBudget(agg.InitialEmployees, agg.EffectiveSalaryCost, req.Periods)
	}
	respondJSON(w, http.StatusOK, resp)
}
