package sampler

import (
	"image"
	"math"
	"math/rand"

	"github.com/tmayer/go-stl-raytracer/pkg/core"
)

// StratifiedSampler partitions the unit square for each pixel into an
// xStrata x yStrata grid and draws one sample per cell, optionally jittered
// uniformly within the cell. Cells are visited in shuffled order per
// dimension so that the dimensions of a sample vector are decorrelated.
type StratifiedSampler struct {
	xStrata, yStrata int
	sampledDims      int
	jitter           bool
	seed             int64
	rng              *rand.Rand

	// Precomputed stratified tables for the current pixel, indexed by
	// dimension then by sample index.
	samples1D [][]float64
	samples2D [][]core.Vec2

	sampleIndex int
	dim1D       int
	dim2D       int
}

// NewStratifiedSampler creates a stratified sampler. The number of samples
// per pixel is xStrata*yStrata. sampledDims is the number of dimensions for
// which stratified tables are precomputed; dimensions beyond that fall back
// to uniform random values.
func NewStratifiedSampler(xStrata, yStrata, sampledDims int, seed int64, jitter bool) *StratifiedSampler {
	s := &StratifiedSampler{
		xStrata:     xStrata,
		yStrata:     yStrata,
		sampledDims: sampledDims,
		jitter:      jitter,
		seed:        seed,
		rng:         rand.New(rand.NewSource(seed)),
		// Before the first sample vector the cursor sits one before the
		// tables, exactly as StartPixel leaves it.
		sampleIndex: -1,
	}
	s.samples1D = make([][]float64, sampledDims)
	s.samples2D = make([][]core.Vec2, sampledDims)
	spp := s.SamplesPerPixel()
	for d := 0; d < sampledDims; d++ {
		s.samples1D[d] = make([]float64, spp)
		s.samples2D[d] = make([]core.Vec2, spp)
	}
	return s
}

// SamplesPerPixel returns the number of sample vectors generated per pixel
func (s *StratifiedSampler) SamplesPerPixel() int {
	return s.xStrata * s.yStrata
}

// StartPixel regenerates the stratified sample tables for a new pixel
func (s *StratifiedSampler) StartPixel(_ image.Point) {
	spp := s.SamplesPerPixel()
	for d := 0; d < s.sampledDims; d++ {
		s.stratify1D(s.samples1D[d])
		s.stratify2D(s.samples2D[d])

		// Shuffle each dimension independently so that, e.g., the
		// i-th film sample and the i-th lens sample are not taken
		// from corresponding strata.
		s.rng.Shuffle(spp, func(i, j int) {
			s.samples1D[d][i], s.samples1D[d][j] = s.samples1D[d][j], s.samples1D[d][i]
		})
		s.rng.Shuffle(spp, func(i, j int) {
			s.samples2D[d][i], s.samples2D[d][j] = s.samples2D[d][j], s.samples2D[d][i]
		})
	}
	// The first StartNextSample call advances to sample vector 0.
	s.sampleIndex = -1
	s.dim1D = 0
	s.dim2D = 0
}

// stratify1D fills out with one sample per stratum of the unit interval
func (s *StratifiedSampler) stratify1D(out []float64) {
	count := len(out)
	invCount := 1.0 / float64(count)
	for i := range out {
		offset := 0.5
		if s.jitter {
			offset = s.rng.Float64()
		}
		out[i] = math.Min((float64(i)+offset)*invCount, OneMinusEpsilon)
	}
}

// stratify2D fills out with one sample per cell of the strata grid
func (s *StratifiedSampler) stratify2D(out []core.Vec2) {
	invX := 1.0 / float64(s.xStrata)
	invY := 1.0 / float64(s.yStrata)
	i := 0
	for y := 0; y < s.yStrata; y++ {
		for x := 0; x < s.xStrata; x++ {
			offsetX, offsetY := 0.5, 0.5
			if s.jitter {
				offsetX = s.rng.Float64()
				offsetY = s.rng.Float64()
			}
			out[i] = core.NewVec2(
				math.Min((float64(x)+offsetX)*invX, OneMinusEpsilon),
				math.Min((float64(y)+offsetY)*invY, OneMinusEpsilon),
			)
			i++
		}
	}
}

// Get1D returns the next 1D dimension of the current sample vector
func (s *StratifiedSampler) Get1D() float64 {
	if s.dim1D < s.sampledDims {
		v := s.samples1D[s.dim1D][s.sampleIndex]
		s.dim1D++
		return v
	}
	return s.rng.Float64()
}

// Get2D returns the next two dimensions of the current sample vector
func (s *StratifiedSampler) Get2D() core.Vec2 {
	if s.dim2D < s.sampledDims {
		v := s.samples2D[s.dim2D][s.sampleIndex]
		s.dim2D++
		return v
	}
	return core.NewVec2(s.rng.Float64(), s.rng.Float64())
}

// StartNextSample advances to the next sample vector for the current pixel.
// It must be called before the first dimension of each sample vector is
// requested, including the first.
func (s *StratifiedSampler) StartNextSample() bool {
	s.dim1D = 0
	s.dim2D = 0
	s.sampleIndex++
	return s.sampleIndex < s.SamplesPerPixel()
}

// CloneWithSeed returns a sampler with the same configuration but an
// independent generator seeded with the given seed
func (s *StratifiedSampler) CloneWithSeed(seed int64) Sampler {
	return NewStratifiedSampler(s.xStrata, s.yStrata, s.sampledDims, seed, s.jitter)
}
