package planner

import (
	"context"
	"sync"

	"github.com/renli/renli/pkg/model"
)

// Scenario 一组命名的 what-if 场景参数
type Scenario struct {
	Name       string                `json:"name"`
	Parameters *model.PlanParameters `json:"parameters"`
}

// ScenarioResult 单个场景的求解结果
type ScenarioResult struct {
	Name   string            `json:"name"`
	Result *model.PlanResult `json:"result,omitempty"`
	Err    error             `json:"-"`
}

// WhatIfRunner 并行场景求解器。
// 各场景独立建模求解，互不共享可变状态，可安全并行。
type WhatIfRunner struct {
	planner *Planner
	workers int
}

// NewWhatIfRunner 创建并行场景求解器
func NewWhatIfRunner(p *Planner, workers int) *WhatIfRunner {
	if workers <= 0 {
		workers = 4
	}
	return &WhatIfRunner{
		planner: p,
		workers: workers,
	}
}

// indexedResult 带输入序号的场景结果
type indexedResult struct {
	index  int
	result ScenarioResult
}

// Run 并行求解一批场景，结果顺序与输入一致
func (r *WhatIfRunner) Run(ctx context.Context, scenarios []Scenario) []ScenarioResult {
	if len(scenarios) == 0 {
		return nil
	}

	resultChan := make(chan indexedResult, len(scenarios))
	jobChan := make(chan struct {
		index    int
		scenario Scenario
	}, len(scenarios))

	// 启动工作协程
	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobChan {
				select {
				case <-ctx.Done():
					resultChan <- indexedResult{
						index:  job.index,
						result: ScenarioResult{Name: job.scenario.Name, Err: ctx.Err()},
					}
				default:
					res, err := r.planner.Solve(ctx, job.scenario.Parameters)
					resultChan <- indexedResult{
						index:  job.index,
						result: ScenarioResult{Name: job.scenario.Name, Result: res, Err: err},
					}
				}
			}
		}()
	}

	// 发送任务
	go func() {
		for i, sc := range scenarios {
			jobChan <- struct {
				index    int
				scenario Scenario
			}{i, sc}
		}
		close(jobChan)
	}()

	// 等待完成
	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// 收集结果
	results := make([]ScenarioResult, len(scenarios))
	for res := range resultChan {
		results[res.index] = res.result
	}
	return results
}
