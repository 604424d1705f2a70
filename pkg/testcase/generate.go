package testcase

import "math/rand/v2"

// Operation weights used by Generate, out of weightSum.
const (
	weightFirst  = 3
	weightRemove = 3
	weightInsert = 3
	weightTotal  = 1
	weightSum    = weightFirst + weightRemove + weightInsert + weightTotal
)

// GenerateParams controls random case generation.
type GenerateParams struct {
	// Size is the initial landscape length.
	Size int
	// Ops is the number of operations.
	Ops int
	// MaxHeight bounds heights to [0, MaxHeight).
	MaxHeight int
}

// Generate builds a random case whose expected results come from Reference.
// First and remove are never emitted against an empty landscape; an insert
// is emitted instead.
func Generate(rng *rand.Rand, params GenerateParams) *Case {
	maxHeight := max(params.MaxHeight, 1)

	c := &Case{
		Landscape:  make([]int, max(params.Size, 0)),
		Operations: make([]Operation, 0, max(params.Ops, 0)),
	}

	for i := range c.Landscape {
		c.Landscape[i] = rng.IntN(maxHeight)
	}

	ref := NewReference(c.Landscape)

	for range params.Ops {
		pick := rng.IntN(weightSum)

		switch {
		case pick < weightTotal:
			c.Operations = append(c.Operations, Operation{Code: OpTotal})
			c.Expected = append(c.Expected, ref.TotalTreasure())
		case ref.Len() == 0 || pick < weightTotal+weightInsert:
			op := Operation{Code: OpInsert, Height: rng.IntN(maxHeight)}
			ref.Insert(op.Height)
			c.Operations = append(c.Operations, op)
		case pick < weightTotal+weightInsert+weightFirst:
			first, _ := ref.First()
			c.Operations = append(c.Operations, Operation{Code: OpFirst})
			c.Expected = append(c.Expected, first)
		default:
			treasure, _ := ref.Remove()
			c.Operations = append(c.Operations, Operation{Code: OpRemove})
			c.Expected = append(c.Expected, treasure)
		}
	}

	if c.Expected == nil {
		c.Expected = []float64{}
	}

	return c
}
