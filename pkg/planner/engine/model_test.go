package engine

import (
	"math"
	"testing"
)

func TestModel_AddColumn(t *testing.T) {
	m := &Model{}

	c0 := m.AddColumn("x0", 2.5, 0, Inf(), Integer)
	c1 := m.AddColumn("x1", 1.0, 0, 10, Continuous)

	if c0 != 0 || c1 != 1 {
		t.Errorf("Expected column indexes 0,1, got %d,%d", c0, c1)
	}
	if m.NumCols() != 2 {
		t.Errorf("Expected 2 columns, got %d", m.NumCols())
	}
	if m.ColCosts[0] != 2.5 || m.ColTypes[0] != Integer {
		t.Error("Column 0 attributes not recorded")
	}
	if !math.IsInf(m.ColUpper[0], 1) {
		t.Error("Column 0 should be unbounded above")
	}
}

func TestModel_AddSparseRow(t *testing.T) {
	m := &Model{}
	m.AddColumn("x0", 1, 0, Inf(), Integer)
	m.AddColumn("x1", 1, 0, Inf(), Integer)
	m.AddColumn("x2", 1, 0, Inf(), Integer)

	r0 := m.AddSparseRow("r0", 1, []int{0, 1, 2}, []float64{1, 0, 3}, 10)
	r1 := m.AddSparseRow("r1", NegInf(), []int{1}, []float64{2}, 5)

	if r0 != 0 || r1 != 1 {
		t.Errorf("Expected row indexes 0,1, got %d,%d", r0, r1)
	}
	if m.NumRows() != 2 {
		t.Errorf("Expected 2 rows, got %d", m.NumRows())
	}

	// 零系数应被过滤：r0 两个非零元素，r1 一个
	if len(m.ConstMatrix) != 3 {
		t.Fatalf("Expected 3 nonzeros, got %d", len(m.ConstMatrix))
	}
	for _, nz := range m.ConstMatrix {
		if nz.Val == 0 {
			t.Error("Zero coefficient stored in matrix")
		}
	}
	if m.RowLower[0] != 1 || m.RowUpper[0] != 10 {
		t.Error("Row 0 bounds not recorded")
	}
	if !math.IsInf(m.RowLower[1], -1) {
		t.Error("Row 1 should have no lower bound")
	}
}

func TestSolution_Value(t *testing.T) {
	sol := &Solution{ColumnPrimal: []float64{1.5, math.NaN()}}

	if got := sol.Value(0); got != 1.5 {
		t.Errorf("Expected 1.5, got %f", got)
	}
	// NaN 和越界列均按0处理
	if got := sol.Value(1); got != 0 {
		t.Errorf("Expected 0 for NaN, got %f", got)
	}
	if got := sol.Value(5); got != 0 {
		t.Errorf("Expected 0 for missing column, got %f", got)
	}
	if got := sol.Value(-1); got != 0 {
		t.Errorf("Expected 0 for negative column, got %f", got)
	}
}
