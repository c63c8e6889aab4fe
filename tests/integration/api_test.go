// Package integration 提供HTTP接口集成测试
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/renli/renli/internal/handler"
	"github.com/renli/renli/internal/middleware"
	"github.com/renli/renli/pkg/model"
	"github.com/renli/renli/pkg/planner"
	"github.com/renli/renli/pkg/planner/engine"
)

// stubEngine 固定返回预设解
type stubEngine struct {
	solution *engine.Solution
}

func (e *stubEngine) Name() string { return "stub" }

func (e *stubEngine) Solve(ctx context.Context, m *engine.Model, opts engine.Options) (*engine.Solution, error) {
	return e.solution, nil
}

// newTestServer 按服务入口的路由表组装测试服务
func newTestServer(eng engine.Engine) *httptest.Server {
	pl := planner.New(eng)
	planHandler := handler.NewPlanHandler(pl, handler.Options{WhatIfWorkers: 2})
	gradesHandler := handler.NewGradesHandler()
	statsHandler := handler.NewStatsHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/plan/solve", planHandler.Solve)
	mux.HandleFunc("/api/v1/plan/whatif", planHandler.WhatIf)
	mux.HandleFunc("/api/v1/plan/analyze", statsHandler.Analyze)
	mux.HandleFunc("/api/v1/grades/aggregate", gradesHandler.Aggregate)

	chained := middleware.Chain(mux, middleware.RequestID, middleware.SecurityHeaders)
	return httptest.NewServer(chained)
}

func planParams() map[string]interface{} {
	return map[string]interface{}{
		"periods":                    1,
		"hiring_cost":                1000,
		"firing_cost":                1000,
		"overtime_cost":              75,
		"penalty_cost":               100,
		"effective_salary_cost":      5000,
		"initial_employees":          10,
		"max_hire_per_period":        0,
		"max_fire_per_period":        0,
		"overtime_rate_per_employee": 10,
		"working_hours_per_employee": 166,
		"demand":                     []float64{1660},
		"budget":                     100000,
		"service_rate":               1.0,
	}
}

func postJSON(t *testing.T, url string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

// TestPlanSolveAPI 最优解走通完整请求链路
func TestPlanSolveAPI(t *testing.T) {
	srv := newTestServer(&stubEngine{solution: &engine.Solution{
		Status:       engine.StatusOptimal,
		Objective:    50000,
		ColumnPrimal: []float64{0, 0, 10, 0, 0},
	}})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/v1/plan/solve", map[string]interface{}{
		"parameters": planParams(),
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Request-ID"); got == "" {
		t.Error("Missing X-Request-ID header")
	}

	var body struct {
		Success  bool                       `json:"success"`
		Result   *model.PlanResult          `json:"result"`
		Analysis map[string]json.RawMessage `json:"analysis"`
	}
	decodeBody(t, resp, &body)

	if !body.Success {
		t.Error("Expected success=true for optimal solve")
	}
	if body.Result == nil || body.Result.Status != model.StatusOptimal {
		t.Fatalf("Unexpected result: %+v", body.Result)
	}
	if body.Result.Periods[0].Employees != 10 {
		t.Errorf("Expected 10 employees, got %d", body.Result.Periods[0].Employees)
	}
	// 默认附带分析
	if body.Analysis == nil {
		t.Error("Expected analysis in optimal response")
	}
}

// TestPlanSolveAPI_Infeasible 不可行作为正常业务结果返回200
func TestPlanSolveAPI_Infeasible(t *testing.T) {
	srv := newTestServer(&stubEngine{solution: &engine.Solution{Status: engine.StatusInfeasible}})
	defer srv.Close()

	params := planParams()
	params["budget"] = 1 // 预算不足以覆盖既有薪资
	resp := postJSON(t, srv.URL+"/api/v1/plan/solve", map[string]interface{}{
		"parameters": params,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Result  *model.PlanResult `json:"result"`
	}
	decodeBody(t, resp, &body)

	if body.Success {
		t.Error("Expected success=false for infeasible model")
	}
	if body.Result.Status != model.StatusInfeasible {
		t.Errorf("Expected Infeasible, got %s", body.Result.Status)
	}
	if !strings.Contains(body.Message, "无可行解") {
		t.Errorf("Unexpected message: %s", body.Message)
	}
}

// TestPlanSolveAPI_BadRequest 参数错误返回400错误封套
func TestPlanSolveAPI_BadRequest(t *testing.T) {
	srv := newTestServer(&stubEngine{solution: &engine.Solution{Status: engine.StatusOptimal}})
	defer srv.Close()

	cases := []struct {
		name string
		body string
	}{
		{"非法JSON", "{not json"},
		{"缺少参数", `{}`},
		{"负值参数", `{"parameters":{"periods":1,"hiring_cost":-1,"demand":[100]}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/v1/plan/solve", "application/json",
				strings.NewReader(tc.body))
			if err != nil {
				t.Fatalf("Request failed: %v", err)
			}
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", resp.StatusCode)
			}

			var envelope struct {
				Error   bool   `json:"error"`
				Code    string `json:"code"`
				Message string `json:"message"`
			}
			decodeBody(t, resp, &envelope)
			if !envelope.Error || envelope.Code == "" {
				t.Errorf("Malformed error envelope: %+v", envelope)
			}
		})
	}
}

// TestWhatIfAPI 批量场景按提交顺序返回
func TestWhatIfAPI(t *testing.T) {
	srv := newTestServer(&stubEngine{solution: &engine.Solution{
		Status:       engine.StatusOptimal,
		Objective:    50000,
		ColumnPrimal: []float64{0, 0, 10, 0, 0},
	}})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/v1/plan/whatif", map[string]interface{}{
		"scenarios": []map[string]interface{}{
			{"name": "基准", "parameters": planParams()},
			{"name": "高预算", "parameters": planParams()},
			{"name": "低预算", "parameters": planParams()},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success   bool `json:"success"`
		Scenarios []struct {
			Name    string `json:"name"`
			Success bool   `json:"success"`
		} `json:"scenarios"`
	}
	decodeBody(t, resp, &body)

	if !body.Success {
		t.Error("Expected success=true")
	}
	want := []string{"基准", "高预算", "低预算"}
	if len(body.Scenarios) != len(want) {
		t.Fatalf("Expected %d scenarios, got %d", len(want), len(body.Scenarios))
	}
	for i, sc := range body.Scenarios {
		if sc.Name != want[i] {
			t.Errorf("Scenario %d: expected %s, got %s", i, want[i], sc.Name)
		}
		if !sc.Success {
			t.Errorf("Scenario %s not successful", sc.Name)
		}
	}
}

// TestGradesAggregateAPI 职级汇总与自动预算
func TestGradesAggregateAPI(t *testing.T) {
	srv := newTestServer(&stubEngine{solution: &engine.Solution{Status: engine.StatusOptimal}})
	defer srv.Close()

	resp := postJSON(t, srv.URL+"/api/v1/grades/aggregate", map[string]interface{}{
		"grades": []map[string]interface{}{
			{"name": "初级", "count": 2, "salary": 1000},
			{"name": "高级", "count": 3, "salary": 2000},
		},
		"periods": 6,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success             bool    `json:"success"`
		InitialEmployees    int     `json:"initial_employees"`
		EffectiveSalaryCost float64 `json:"effective_salary_cost"`
		AutoBudget          float64 `json:"auto_budget"`
	}
	decodeBody(t, resp, &body)

	if !body.Success {
		t.Error("Expected success=true")
	}
	if body.InitialEmployees != 5 {
		t.Errorf("Expected 5 employees, got %d", body.InitialEmployees)
	}
	if body.EffectiveSalaryCost != 1600 {
		t.Errorf("Expected salary 1600, got %.1f", body.EffectiveSalaryCost)
	}
	if body.AutoBudget != 5*1600*6 {
		t.Errorf("Expected auto budget 48000, got %.1f", body.AutoBudget)
	}
}

// TestAnalyzeAPI 对既有结果做离线分析
func TestAnalyzeAPI(t *testing.T) {
	srv := newTestServer(&stubEngine{solution: &engine.Solution{Status: engine.StatusOptimal}})
	defer srv.Close()

	result := map[string]interface{}{
		"status":     "Optimal",
		"total_cost": 50000,
		"periods": []map[string]interface{}{
			{"month": 1, "demand_hours": 1660, "hired": 0, "fired": 0,
				"employees": 10, "overtime_hours": 0, "unmet_demand_hours": 0},
		},
	}
	resp := postJSON(t, srv.URL+"/api/v1/plan/analyze", map[string]interface{}{
		"parameters": planParams(),
		"result":     result,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success  bool            `json:"success"`
		Costs    json.RawMessage `json:"costs"`
		Capacity json.RawMessage `json:"capacity"`
		Variance json.RawMessage `json:"variance"`
	}
	decodeBody(t, resp, &body)

	if !body.Success {
		t.Error("Expected success=true")
	}
	if body.Costs == nil || body.Capacity == nil || body.Variance == nil {
		t.Error("Expected all three analysis sections")
	}

	// 月数与参数不一致的结果被拒绝
	resp = postJSON(t, srv.URL+"/api/v1/plan/analyze", map[string]interface{}{
		"parameters": planParams(),
		"result":     map[string]interface{}{"status": "Optimal", "periods": []interface{}{}},
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400 for mismatched result, got %d", resp.StatusCode)
	}
}
