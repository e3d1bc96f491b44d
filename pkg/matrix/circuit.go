package matrix

import (
	"fmt"

	"github.com/edp1096/sparse"
)

// CircuitMatrix is a complex nodal admittance system Y·V = I backed by the
// sparse LU solver. It is created per frequency point and is not safe for
// concurrent use.
type CircuitMatrix struct {
	Size         int
	matrix       *sparse.Matrix
	rhs          []float64
	rhsImag      []float64
	solution     []float64
	solutionImag []float64
	err          error
}

var _ DeviceMatrix = (*CircuitMatrix)(nil)

func NewMatrix(size int) (*CircuitMatrix, error) {
	config := &sparse.Configuration{
		Real:                    true,
		Complex:                 true,
		SeparatedComplexVectors: true,
		Expandable:              true,
		Translate:               false,
		ModifiedNodal:           true,
		TiesMultiplier:          5,
		PrinterWidth:            140,
		Annotate:                0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %w", err)
	}

	vectorSize := size + 1 // 1-based indexing
	return &CircuitMatrix{
		Size:    size,
		matrix:  mat,
		rhs:     make([]float64, vectorSize),
		rhsImag: make([]float64, vectorSize),
	}, nil
}

func (m *CircuitMatrix) inBounds(i int) bool {
	return i > 0 && i <= m.Size
}

// AddComplexElement accumulates real+j·imag into Y(i, j). An out of range
// index is remembered and reported by Solve.
func (m *CircuitMatrix) AddComplexElement(i, j int, real, imag float64) {
	if !m.inBounds(i) || !m.inBounds(j) {
		m.fail(fmt.Errorf("matrix index out of bounds (i=%d, j=%d, size=%d)", i, j, m.Size))
		return
	}

	element := m.matrix.GetElement(int64(i), int64(j))
	element.Real += real
	element.Imag += imag
}

// AddComplexRHS accumulates real+j·imag into the injected current at node i.
func (m *CircuitMatrix) AddComplexRHS(i int, real, imag float64) {
	if !m.inBounds(i) {
		m.fail(fmt.Errorf("rhs index out of bounds (i=%d, size=%d)", i, m.Size))
		return
	}
	m.rhs[i] += real
	m.rhsImag[i] += imag
}

func (m *CircuitMatrix) fail(err error) {
	if m.err == nil {
		m.err = err
	}
}

func (m *CircuitMatrix) Solve() error {
	if m.err != nil {
		return m.err
	}

	err := m.matrix.Factor()
	if err != nil {
		return fmt.Errorf("matrix factorization failed: %w", err)
	}

	m.solution, m.solutionImag, err = m.matrix.SolveComplex(m.rhs, m.rhsImag)
	if err != nil {
		return fmt.Errorf("matrix solve failed: %w", err)
	}

	return nil
}

// GetComplexSolution returns the solved voltage of node i. Ground and
// unsolved systems read as zero.
func (m *CircuitMatrix) GetComplexSolution(i int) (float64, float64) {
	if !m.inBounds(i) || m.solution == nil {
		return 0, 0
	}
	return m.solution[i], m.solutionImag[i]
}

func (m *CircuitMatrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
		m.matrix = nil
	}
}
