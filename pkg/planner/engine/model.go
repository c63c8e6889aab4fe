// Package engine 定义求解引擎边界：线性模型描述与求解能力接口。
// 规划核心只产出一份与具体求解器无关的模型描述，任何满足
// Engine 接口的混合整数线性规划引擎均可替换接入。
package engine

import (
	"context"
	"math"
	"time"
)

// VarType 变量类型
type VarType int

const (
	Continuous VarType = iota // 连续变量
	Integer                   // 整数变量
)

// Nonzero 约束矩阵中的一个非零元素 (行, 列, 系数)
type Nonzero struct {
	Row int
	Col int
	Val float64
}

// Model 线性模型描述。
// 目标为最小化 ColCosts·x + Offset，
// 约束为 RowLower ≤ A·x ≤ RowUpper，变量域为 ColLower ≤ x ≤ ColUpper。
type Model struct {
	ColCosts    []float64
	ColLower    []float64
	ColUpper    []float64
	ColTypes    []VarType
	ColNames    []string
	RowLower    []float64
	RowUpper    []float64
	RowNames    []string
	ConstMatrix []Nonzero
	Offset      float64
}

// NumCols 返回变量数量
func (m *Model) NumCols() int {
	return len(m.ColCosts)
}

// NumRows 返回约束数量
func (m *Model) NumRows() int {
	return len(m.RowLower)
}

// AddColumn 添加一个变量，返回其列号
func (m *Model) AddColumn(name string, cost, lower, upper float64, vt VarType) int {
	col := len(m.ColCosts)
	m.ColCosts = append(m.ColCosts, cost)
	m.ColLower = append(m.ColLower, lower)
	m.ColUpper = append(m.ColUpper, upper)
	m.ColTypes = append(m.ColTypes, vt)
	m.ColNames = append(m.ColNames, name)
	return col
}

// AddSparseRow 以稀疏形式添加一条约束，返回其行号。
// 零系数会被过滤，不写入约束矩阵。
func (m *Model) AddSparseRow(name string, lower float64, cols []int, vals []float64, upper float64) int {
	row := len(m.RowLower)
	m.RowLower = append(m.RowLower, lower)
	m.RowUpper = append(m.RowUpper, upper)
	m.RowNames = append(m.RowNames, name)

	for i, col := range cols {
		if vals[i] != 0.0 {
			m.ConstMatrix = append(m.ConstMatrix, Nonzero{
				Row: row,
				Col: col,
				Val: vals[i],
			})
		}
	}
	return row
}

// Inf 返回正无穷（无上界）
func Inf() float64 {
	return math.Inf(1)
}

// NegInf 返回负无穷（无下界）
func NegInf() float64 {
	return math.Inf(-1)
}

// Status 求解状态分类
type Status string

const (
	StatusOptimal    Status = "Optimal"
	StatusInfeasible Status = "Infeasible"
	StatusUnbounded  Status = "Unbounded"
	StatusUndefined  Status = "Undefined"
)

// Solution 求解结果。
// ColumnPrimal 为各变量取值，非最优状态下可能为空或短于变量数，
// 调用方需对缺失取值做零值处理。
type Solution struct {
	Status       Status
	Objective    float64
	ColumnPrimal []float64
}

// Value 返回某列的取值，缺失时返回0
func (s *Solution) Value(col int) float64 {
	if col < 0 || col >= len(s.ColumnPrimal) {
		return 0
	}
	v := s.ColumnPrimal[col]
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// Options 求解选项
type Options struct {
	// TimeLimit 求解时间上限，零值表示不限制。
	// 是否生效取决于引擎实现，核心不自行强制。
	TimeLimit time.Duration
}

// Engine 求解引擎接口：给定线性模型描述，返回状态和变量取值
type Engine interface {
	// Name 返回引擎名称
	Name() string

	// Solve 求解模型
	Solve(ctx context.Context, m *Model, opts Options) (*Solution, error)
}
