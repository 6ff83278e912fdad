package hash

import (
	"math"
	"sync"
)

// cosTable holds cos((2i+1)*u*pi/2R) for i,u in [0,R), plus the
// orthonormal per-row scaling factors, for one resolution R.
type cosTable struct {
	cos   [][]float64 // cos[u][i]
	alpha []float64   // alpha[u]
}

var tableCache sync.Map // int(R) -> *cosTable

func getCosTable(r int) *cosTable {
	if t, ok := tableCache.Load(r); ok {
		return t.(*cosTable)
	}
	t := buildCosTable(r)
	actual, _ := tableCache.LoadOrStore(r, t)
	return actual.(*cosTable)
}

func buildCosTable(r int) *cosTable {
	t := &cosTable{
		cos:   make([][]float64, r),
		alpha: make([]float64, r),
	}
	for u := 0; u < r; u++ {
		t.cos[u] = make([]float64, r)
		for i := 0; i < r; i++ {
			t.cos[u][i] = math.Cos(float64(2*i+1) * float64(u) * math.Pi / float64(2*r))
		}
		if u == 0 {
			t.alpha[u] = math.Sqrt(1.0 / float64(r))
		} else {
			t.alpha[u] = math.Sqrt(2.0 / float64(r))
		}
	}
	return t
}

// DCT computes the 2-D DCT-II of an R*R row-major buffer, applying the
// separable 1-D transform along rows then columns with orthonormal
// scaling. The result is R*R row-major, frequency-ordered.
func DCT(buffer []float64, r int) [][]float64 {
	t := getCosTable(r)

	// Rows: tmp[y][u] = sum_x buffer[y][x] * cos[u][x] * alpha[u]
	tmp := make([][]float64, r)
	for y := 0; y < r; y++ {
		tmp[y] = make([]float64, r)
		row := buffer[y*r : y*r+r]
		for u := 0; u < r; u++ {
			var sum float64
			cu := t.cos[u]
			for x := 0; x < r; x++ {
				sum += row[x] * cu[x]
			}
			tmp[y][u] = sum * t.alpha[u]
		}
	}

	// Columns: out[v][u] = sum_y tmp[y][u] * cos[v][y] * alpha[v]
	out := make([][]float64, r)
	for v := 0; v < r; v++ {
		out[v] = make([]float64, r)
	}
	for u := 0; u < r; u++ {
		for v := 0; v < r; v++ {
			var sum float64
			cv := t.cos[v]
			for y := 0; y < r; y++ {
				sum += tmp[y][u] * cv[y]
			}
			out[v][u] = sum * t.alpha[v]
		}
	}

	return out
}
