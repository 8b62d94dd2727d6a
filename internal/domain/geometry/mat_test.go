package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rotationZ builds a rotation about the Z axis with a translation.
func rotationZ(angle float64, t Vec3) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, -s, 0, t.X},
		{s, c, 0, t.Y},
		{0, 0, 1, t.Z},
		{0, 0, 0, 1},
	}
}

func assertMatInDelta(t *testing.T, want, got Mat4) {
	t.Helper()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.InDelta(t, want[i][j], got[i][j], 1e-12, "element [%d][%d]", i, j)
		}
	}
}

func TestIdentityIsNeutral(t *testing.T) {
	m := rotationZ(0.7, Vec3{X: 1, Y: 2, Z: 3})
	assertMatInDelta(t, m, Identity().Mul(m))
	assertMatInDelta(t, m, m.Mul(Identity()))
}

func TestMulPoint(t *testing.T) {
	m := rotationZ(math.Pi/2, Vec3{X: 10})
	p := m.MulPoint(Vec3{X: 1})
	assert.InDelta(t, 10.0, p.X, 1e-12)
	assert.InDelta(t, 1.0, p.Y, 1e-12)
	assert.InDelta(t, 0.0, p.Z, 1e-12)
}

func TestMulDirIgnoresTranslation(t *testing.T) {
	m := rotationZ(math.Pi/2, Vec3{X: 10, Y: -5})
	d := m.MulDir(Vec3{X: 1})
	assert.InDelta(t, 0.0, d.X, 1e-12)
	assert.InDelta(t, 1.0, d.Y, 1e-12)
	assert.InDelta(t, 0.0, d.Z, 1e-12)
}

func TestInverseRoundTrip(t *testing.T) {
	m := rotationZ(1.234, Vec3{X: 4, Y: -7, Z: 2.5})
	inv, err := m.Inverse()
	require.NoError(t, err)

	assertMatInDelta(t, Identity(), m.Mul(inv))
	assertMatInDelta(t, Identity(), inv.Mul(m))
}

func TestInverseSingular(t *testing.T) {
	var zero Mat4
	zero[3][3] = 1
	_, err := zero.Inverse()
	assert.ErrorIs(t, err, ErrSingularMatrix)
}
