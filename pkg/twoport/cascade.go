package twoport

import (
	"errors"
	"fmt"
)

var ErrIncompleteCascade = errors.New("incomplete cascade")

// Cascade multiplies matrices left to right starting from the identity. An
// empty slice is a direct wire. A nil entry fails the whole product rather
// than being skipped.
func Cascade(matrices []*Matrix) (Matrix, error) {
	result := Identity()
	for i, m := range matrices {
		if m == nil {
			return Matrix{}, fmt.Errorf("%w: matrix %d is missing", ErrIncompleteCascade, i+1)
		}
		result = result.Mul(*m)
	}
	return result, nil
}
