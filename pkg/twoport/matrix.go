// Package twoport builds and cascades ABCD transfer matrices of a ladder
// network.
//
// A Matrix [[A, B], [C, D]] relates the input port to the output port by
//
//	Vin = A·Vout + B·Iout
//	Iin = C·Vout + D·Iout
package twoport

import (
	"fmt"
	"math/cmplx"
)

type Matrix [2][2]complex128

func Identity() Matrix {
	return Matrix{{1, 0}, {0, 1}}
}

// Series is the matrix of an impedance z in the signal path.
func Series(z complex128) Matrix {
	return Matrix{{1, z}, {0, 1}}
}

// Shunt is the matrix of an admittance y across the port.
func Shunt(y complex128) Matrix {
	return Matrix{{1, 0}, {y, 1}}
}

func (m Matrix) A() complex128 { return m[0][0] }
func (m Matrix) B() complex128 { return m[0][1] }
func (m Matrix) C() complex128 { return m[1][0] }
func (m Matrix) D() complex128 { return m[1][1] }

// Mul returns m·n.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		{m[0][0]*n[0][0] + m[0][1]*n[1][0], m[0][0]*n[0][1] + m[0][1]*n[1][1]},
		{m[1][0]*n[0][0] + m[1][1]*n[1][0], m[1][0]*n[0][1] + m[1][1]*n[1][1]},
	}
}

// Det returns A·D − B·C.
func (m Matrix) Det() complex128 {
	return m[0][0]*m[1][1] - m[0][1]*m[1][0]
}

// EqualApprox reports whether every entry of m and n differs by at most tol.
func (m Matrix) EqualApprox(n Matrix, tol float64) bool {
	for i := range m {
		for j := range m[i] {
			if cmplx.Abs(m[i][j]-n[i][j]) > tol {
				return false
			}
		}
	}
	return true
}

func (m Matrix) String() string {
	return fmt.Sprintf("[[%v %v] [%v %v]]", m[0][0], m[0][1], m[1][0], m[1][1])
}
