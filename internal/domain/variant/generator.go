// Package variant genera combinaciones de atributos de producto (talla, color,
// material, ...) como un generador explícito, acotado y reiniciable. Evita la
// recursión anidada para que el uso de memoria sea predecible con conjuntos de
// atributos grandes.
package variant

import (
	"fmt"

	"github.com/jhoicas/bom-engine/internal/domain"
)

// Attribute es un eje de variación con sus valores posibles, en orden.
type Attribute struct {
	Name   string
	Values []string
}

// Generator recorre el producto cartesiano de los atributos con un contador
// posicional (odómetro), una combinación por llamada a Next.
type Generator struct {
	attrs   []Attribute
	indices []int
	total   int
	emitted int
	done    bool
}

// NewGenerator construye el generador. maxCombinations acota la expansión
// (0 = sin tope); si el producto cartesiano supera el tope, falla de entrada
// en vez de truncar en silencio.
func NewGenerator(attrs []Attribute, maxCombinations int) (*Generator, error) {
	total := 1
	for _, a := range attrs {
		if len(a.Values) == 0 {
			return nil, fmt.Errorf("atributo %q sin valores: %w", a.Name, domain.ErrInvalidInput)
		}
		total *= len(a.Values)
	}
	if len(attrs) == 0 {
		total = 0
	}
	if maxCombinations > 0 && total > maxCombinations {
		return nil, fmt.Errorf("expansión de %d combinaciones supera el tope %d: %w",
			total, maxCombinations, domain.ErrInvalidInput)
	}
	return &Generator{
		attrs:   attrs,
		indices: make([]int, len(attrs)),
		total:   total,
	}, nil
}

// Total devuelve cuántas combinaciones produce el generador completo.
func (g *Generator) Total() int { return g.total }

// Next devuelve la siguiente combinación como pares nombre=valor en el orden
// de los atributos. El segundo valor es false al agotarse.
func (g *Generator) Next() ([]string, bool) {
	if g.done || g.emitted >= g.total {
		return nil, false
	}
	combo := make([]string, len(g.attrs))
	for i, a := range g.attrs {
		combo[i] = a.Name + "=" + a.Values[g.indices[i]]
	}
	g.emitted++

	// Avanza el odómetro de derecha a izquierda
	for i := len(g.indices) - 1; i >= 0; i-- {
		g.indices[i]++
		if g.indices[i] < len(g.attrs[i].Values) {
			break
		}
		g.indices[i] = 0
		if i == 0 {
			g.done = true
		}
	}
	return combo, true
}

// Reset reinicia el generador a la primera combinación.
func (g *Generator) Reset() {
	for i := range g.indices {
		g.indices[i] = 0
	}
	g.emitted = 0
	g.done = false
}
