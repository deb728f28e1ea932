package registration

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// RotationMatrix is a 3x3 integer matrix with entries in {-1, 0, 1}.
// Column c is the image of local axis c.
type RotationMatrix [3][3]int

// Transpose returns mᵀ, which is also m⁻¹ for a rotation.
func (m RotationMatrix) Transpose() RotationMatrix {
	var t RotationMatrix
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			t[c][r] = m[r][c]
		}
	}
	return t
}

// Mul returns m·n.
func (m RotationMatrix) Mul(n RotationMatrix) RotationMatrix {
	var out RotationMatrix
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			for k := 0; k < 3; k++ {
				out[r][c] += m[r][k] * n[k][c]
			}
		}
	}
	return out
}

// NumRotations is the number of orientation-preserving symmetries of a cube.
const NumRotations = 24

// Rotation identifies one member of the rotation catalog.
type Rotation uint8

// Identity leaves every position unchanged.
const Identity Rotation = 0

// rotationTable lists the 24 proper rotations, grouped by the image of the
// local +x axis (facing) and then by the image of the local +y axis (up).
var rotationTable = [NumRotations]RotationMatrix{
	// facing +x
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{1, 0, 0}, {0, -1, 0}, {0, 0, -1}},
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{1, 0, 0}, {0, 0, 1}, {0, -1, 0}},
	// facing -x
	{{-1, 0, 0}, {0, 1, 0}, {0, 0, -1}},
	{{-1, 0, 0}, {0, -1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, -1}, {0, -1, 0}},
	// facing +y
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {1, 0, 0}, {0, -1, 0}},
	// facing -y
	{{0, 1, 0}, {-1, 0, 0}, {0, 0, 1}},
	{{0, -1, 0}, {-1, 0, 0}, {0, 0, -1}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
	{{0, 0, 1}, {-1, 0, 0}, {0, -1, 0}},
	// facing +z
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, -1, 0}, {0, 0, -1}, {1, 0, 0}},
	{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
	{{0, 0, 1}, {0, -1, 0}, {1, 0, 0}},
	// facing -z
	{{0, 1, 0}, {0, 0, -1}, {-1, 0, 0}},
	{{0, -1, 0}, {0, 0, 1}, {-1, 0, 0}},
	{{0, 0, 1}, {0, 1, 0}, {-1, 0, 0}},
	{{0, 0, -1}, {0, -1, 0}, {-1, 0, 0}},
}

var (
	catalogIndex  map[RotationMatrix]Rotation
	inverseTable  [NumRotations]Rotation
	allRotations  []Rotation
	rotationNames [NumRotations]string
)

func init() {
	catalogIndex = make(map[RotationMatrix]Rotation, NumRotations)
	for i, m := range rotationTable {
		if err := validateRotationMatrix(m); err != nil {
			panic(fmt.Sprintf("registration: rotation %d: %v", i, err))
		}
		if _, dup := catalogIndex[m]; dup {
			panic(fmt.Sprintf("registration: rotation %d duplicates an earlier entry", i))
		}
		catalogIndex[m] = Rotation(i)
		allRotations = append(allRotations, Rotation(i))
		rotationNames[i] = axisName(m, 0) + "/" + axisName(m, 1)
	}
	for i, m := range rotationTable {
		inv, ok := catalogIndex[m.Transpose()]
		if !ok {
			panic(fmt.Sprintf("registration: rotation %d has no inverse in the catalog", i))
		}
		inverseTable[i] = inv
	}
}

// validateRotationMatrix checks that m is a signed permutation matrix with
// determinant +1 and RRᵀ = I.
func validateRotationMatrix(m RotationMatrix) error {
	data := make([]float64, 0, 9)
	for r := 0; r < 3; r++ {
		nonZero := 0
		for c := 0; c < 3; c++ {
			switch m[r][c] {
			case 0:
			case 1, -1:
				nonZero++
			default:
				return fmt.Errorf("entry [%d][%d]=%d outside {-1,0,1}", r, c, m[r][c])
			}
			data = append(data, float64(m[r][c]))
		}
		if nonZero != 1 {
			return fmt.Errorf("row %d has %d non-zero entries", r, nonZero)
		}
	}

	dense := mat.NewDense(3, 3, data)
	if det := mat.Det(dense); det < 0.5 {
		return fmt.Errorf("determinant %.0f, want 1 (reflection)", det)
	}
	var product mat.Dense
	product.Mul(dense, dense.T())
	if !mat.EqualApprox(&product, mat.NewDiagDense(3, []float64{1, 1, 1}), 1e-9) {
		return fmt.Errorf("not orthogonal")
	}
	return nil
}

func axisName(m RotationMatrix, col int) string {
	for r, name := range [3]string{"x", "y", "z"} {
		switch m[r][col] {
		case 1:
			return "+" + name
		case -1:
			return "-" + name
		}
	}
	return "?"
}

// Rotations returns every catalog rotation exactly once, in catalog order.
// The order is fixed so overlap search is deterministic.
func Rotations() []Rotation {
	out := make([]Rotation, len(allRotations))
	copy(out, allRotations)
	return out
}

// Valid reports whether r is a catalog member.
func (r Rotation) Valid() bool {
	return int(r) < NumRotations
}

// Matrix returns the integer matrix for r. It panics for values outside the
// catalog.
func (r Rotation) Matrix() RotationMatrix {
	if !r.Valid() {
		panic(fmt.Sprintf("registration: rotation %d outside catalog", r))
	}
	return rotationTable[r]
}

// Apply rotates p by r.
func (r Rotation) Apply(p Position) Position {
	return p.Rotate(r.Matrix())
}

// Inverse returns the rotation that undoes r.
func (r Rotation) Inverse() Rotation {
	if !r.Valid() {
		panic(fmt.Sprintf("registration: rotation %d outside catalog", r))
	}
	return inverseTable[r]
}

// Compose returns the rotation equivalent to applying b and then a.
func Compose(a, b Rotation) Rotation {
	c, ok := catalogIndex[a.Matrix().Mul(b.Matrix())]
	if !ok {
		// The catalog is a group; reaching this means the table is corrupt.
		panic(fmt.Sprintf("registration: composition of %d and %d left the catalog", a, b))
	}
	return c
}

// RotationForMatrix looks up the catalog member with matrix m.
func RotationForMatrix(m RotationMatrix) (Rotation, bool) {
	r, ok := catalogIndex[m]
	return r, ok
}

// String names r by where local +x and +y end up, e.g. "-x/+y".
func (r Rotation) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rotation(%d)", uint8(r))
	}
	return rotationNames[r]
}
