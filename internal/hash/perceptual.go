package hash

import (
	"math"
	"sort"

	"github.com/HaiderBassem/mediadedupe/internal/hash/bitvec"
	"github.com/HaiderBassem/mediadedupe/pkg/api"
)

// Hasher computes perceptual hashes over R×R grayscale buffers,
// replacing the teacher's fixed 64-bit PHash with a configurable bit
// length H.
type Hasher struct {
	Resolution int // R, the decoded buffer side
	HashBits   int // H, must be a perfect square <= Resolution*Resolution
}

// NewHasher constructs a Hasher, mirroring the teacher's NewPHash
// constructor shape.
func NewHasher(resolution, hashBits int) *Hasher {
	return &Hasher{Resolution: resolution, HashBits: hashBits}
}

// Compute takes an R*R row-major grayscale buffer with values in [0,1]
// and returns its perceptual hash: the top-left sqrt(H)×sqrt(H)
// sub-block of the 2-D DCT, thresholded against the median of its AC
// coefficients (all but the DC term).
func (h *Hasher) Compute(buffer []float64) (bitvec.Vector, error) {
	if len(buffer) != h.Resolution*h.Resolution {
		return bitvec.Vector{}, api.ErrResolutionShape
	}
	side := int(math.Round(math.Sqrt(float64(h.HashBits))))
	if side*side != h.HashBits || side > h.Resolution {
		return bitvec.Vector{}, api.ErrResolutionShape
	}

	dct := DCT(buffer, h.Resolution)

	coeffs := make([]float64, 0, h.HashBits-1)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			if x == 0 && y == 0 {
				continue // skip DC component
			}
			coeffs = append(coeffs, dct[y][x])
		}
	}
	median := medianOf(coeffs)

	v := bitvec.New(h.HashBits)
	bit := 0
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			if x == 0 && y == 0 {
				continue
			}
			if dct[y][x] > median {
				v.Set(bit)
			}
			bit++
		}
	}
	return v, nil
}

func medianOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
