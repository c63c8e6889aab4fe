// Package grades 提供职级汇总预处理：将多职级人员结构折算为
// 单一的人均有效薪资和期初人数，供规划核心使用。
// 核心本身不感知职级数量。
package grades

import (
	"fmt"

	"github.com/renli/renli/pkg/errors"
)

// Grade 一个职级的人数与薪资
type Grade struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Salary float64 `json:"salary"`
}

// Aggregation 职级汇总结果
type Aggregation struct {
	InitialEmployees    int     `json:"initial_employees"`
	EffectiveSalaryCost float64 `json:"effective_salary_cost"`
}

// Aggregate 汇总职级列表：期初人数为各职级人数之和，
// 有效薪资为按人数加权的平均薪资。总人数为0时有效薪资为0。
func Aggregate(list []Grade) (*Aggregation, error) {
	ve := &errors.ValidationErrors{}
	for i, g := range list {
		if g.Count < 0 {
			ve.Add("count", fmt.Sprintf("职级 %d 人数不能为负", i+1))
		}
		if g.Salary < 0 {
			ve.Add("salary", fmt.Sprintf("职级 %d 薪资不能为负", i+1))
		}
	}
	if ve.HasErrors() {
		return nil, ve.ToAppError()
	}

	var total int
	var weighted float64
	for _, g := range list {
		total += g.Count
		weighted += float64(g.Count) * g.Salary
	}

	agg := &Aggregation{InitialEmployees: total}
	if total > 0 {
		agg.EffectiveSalaryCost = weighted / float64(total)
	}
	return agg, nil
}

// AutoBudget 自动预算：维持期初人数全周期的薪资总额
func AutoBudget(initialEmployees int, effectiveSalaryCost float64, periods int) float64 {
	if initialEmployees <= 0 || periods <= 0 {
		return 0
	}
	return float64(initialEmployees) * effectiveSalaryCost * float64(periods)
}
