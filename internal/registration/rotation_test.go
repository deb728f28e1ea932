package registration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testVectors = []Position{
	{X: 1, Y: 2, Z: 3},
	{X: -618, Y: -824, Z: -621},
	{X: 0, Y: 0, Z: 0},
	{X: 7, Y: -33, Z: -71},
	{X: 1000, Y: 0, Z: -1},
}

func TestRotations_CatalogHas24DistinctMatrices(t *testing.T) {
	t.Parallel()

	rots := Rotations()
	require.Len(t, rots, NumRotations)

	seen := make(map[RotationMatrix]bool)
	for _, r := range rots {
		m := r.Matrix()
		assert.False(t, seen[m], "rotation %s repeated", r)
		seen[m] = true
	}
	assert.Len(t, seen, NumRotations)
	assert.Equal(t, Identity, rots[0])
}

func TestRotations_DistinctImagesOfGenericVector(t *testing.T) {
	t.Parallel()

	generic := Position{X: 1, Y: 2, Z: 3}
	images := make(map[Position]Rotation)
	for _, r := range Rotations() {
		img := r.Apply(generic)
		if prev, dup := images[img]; dup {
			t.Fatalf("rotations %s and %s both map %s to %s", prev, r, generic, img)
		}
		images[img] = r
	}
}

func TestRotations_PreserveSquaredLength(t *testing.T) {
	t.Parallel()

	for _, r := range Rotations() {
		for _, v := range testVectors {
			assert.Equal(t, v.SquaredLength(), r.Apply(v).SquaredLength(), "rotation %s vector %s", r, v)
		}
	}
}

func TestRotations_DistributeOverAddition(t *testing.T) {
	t.Parallel()

	for _, r := range Rotations() {
		for _, a := range testVectors {
			for _, b := range testVectors {
				assert.Equal(t, r.Apply(a).Add(r.Apply(b)), r.Apply(a.Add(b)), "rotation %s", r)
			}
		}
	}
}

func TestRotations_AreProper(t *testing.T) {
	t.Parallel()

	for _, r := range Rotations() {
		require.NoError(t, validateRotationMatrix(r.Matrix()), "rotation %s", r)
	}
}

func TestValidateRotationMatrix_RejectsMalformed(t *testing.T) {
	t.Parallel()

	tests := map[string]RotationMatrix{
		"reflection":   {{-1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		"scaled":       {{2, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		"shear":        {{1, 1, 0}, {0, 1, 0}, {0, 0, 1}},
		"singular":     {{1, 0, 0}, {1, 0, 0}, {0, 0, 1}},
		"zero row":     {{0, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		"swap reflect": {{0, 1, 0}, {1, 0, 0}, {0, 0, 1}},
	}
	for name, m := range tests {
		assert.Error(t, validateRotationMatrix(m), name)
		_, ok := RotationForMatrix(m)
		assert.False(t, ok, name)
	}
}

func TestRotation_InverseUndoesRotation(t *testing.T) {
	t.Parallel()

	for _, r := range Rotations() {
		inv := r.Inverse()
		assert.Equal(t, Identity, Compose(inv, r), "rotation %s", r)
		assert.Equal(t, Identity, Compose(r, inv), "rotation %s", r)
		for _, v := range testVectors {
			assert.Equal(t, v, inv.Apply(r.Apply(v)))
		}
	}
}

func TestCompose_ClosedOverCatalog(t *testing.T) {
	t.Parallel()

	v := Position{X: 3, Y: -5, Z: 11}
	for _, a := range Rotations() {
		for _, b := range Rotations() {
			c := Compose(a, b)
			require.True(t, c.Valid())
			assert.Equal(t, a.Apply(b.Apply(v)), c.Apply(v))
		}
	}
}

func TestRotation_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+x/+y", Identity.String())
	assert.Equal(t, "-x/+y", Rotation(4).String())
	assert.Equal(t, "Rotation(30)", Rotation(30).String())
	assert.Panics(t, func() { Rotation(NumRotations).Matrix() })
}
