package variant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/bom-engine/internal/domain"
	"github.com/jhoicas/bom-engine/internal/domain/variant"
)

func sizeColorAttrs() []variant.Attribute {
	return []variant.Attribute{
		{Name: "talla", Values: []string{"S", "M", "L"}},
		{Name: "color", Values: []string{"rojo", "azul"}},
	}
}

func TestGenerator_ProductoCartesianoEnOrden(t *testing.T) {
	g, err := variant.NewGenerator(sizeColorAttrs(), 0)
	require.NoError(t, err)
	assert.Equal(t, 6, g.Total())

	var combos [][]string
	for {
		c, ok := g.Next()
		if !ok {
			break
		}
		combos = append(combos, c)
	}

	assert.Equal(t, [][]string{
		{"talla=S", "color=rojo"},
		{"talla=S", "color=azul"},
		{"talla=M", "color=rojo"},
		{"talla=M", "color=azul"},
		{"talla=L", "color=rojo"},
		{"talla=L", "color=azul"},
	}, combos)

	// Agotado, Next se mantiene en false.
	_, ok := g.Next()
	assert.False(t, ok)
}

func TestGenerator_ResetVuelveAlInicio(t *testing.T) {
	g, err := variant.NewGenerator(sizeColorAttrs(), 0)
	require.NoError(t, err)

	first, _ := g.Next()
	g.Next()
	g.Reset()
	again, ok := g.Next()

	require.True(t, ok)
	assert.Equal(t, first, again)
}

func TestGenerator_TopeDeCombinaciones(t *testing.T) {
	_, err := variant.NewGenerator(sizeColorAttrs(), 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	g, err := variant.NewGenerator(sizeColorAttrs(), 6)
	require.NoError(t, err, "el tope es inclusivo")
	assert.Equal(t, 6, g.Total())
}

func TestGenerator_AtributoSinValores(t *testing.T) {
	_, err := variant.NewGenerator([]variant.Attribute{
		{Name: "talla", Values: nil},
	}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerator_SinAtributos(t *testing.T) {
	g, err := variant.NewGenerator(nil, 0)
	require.NoError(t, err)

	assert.Equal(t, 0, g.Total())
	_, ok := g.Next()
	assert.False(t, ok)
}

func TestGenerator_UnSoloAtributo(t *testing.T) {
	g, err := variant.NewGenerator([]variant.Attribute{
		{Name: "color", Values: []string{"negro"}},
	}, 0)
	require.NoError(t, err)

	c, ok := g.Next()
	require.True(t, ok)
	assert.Equal(t, []string{"color=negro"}, c)

	_, ok = g.Next()
	assert.False(t, ok)
}
