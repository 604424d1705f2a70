package valley_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/valley/pkg/alg/valley"
)

const (
	propertyRounds    = 200
	propertyMaxSize   = 24
	propertyOps       = 120
	propertyMaxHeight = 50
)

// randomLandscape returns distinct heights when distinct is set, otherwise
// heights drawn from a small range so plateaus are common.
func randomLandscape(rng *rand.Rand, distinct bool) []int {
	size := rng.IntN(propertyMaxSize)

	if distinct {
		return rng.Perm(propertyMaxHeight)[:size]
	}

	out := make([]int, size)
	for i := range out {
		out[i] = rng.IntN(4)
	}

	return out
}

func runRandomOps(t *testing.T, rng *rand.Rand, distinct bool) {
	t.Helper()

	landscape := randomLandscape(rng, distinct)
	tr := valley.New(landscape)
	require.NoError(t, tr.CheckInvariants())

	// present tracks the multiset of heights the landscape must hold.
	present := slices.Clone(landscape)
	high, low := propertyMaxHeight, -1

	for range propertyOps {
		before := tr.TotalTreasure()

		switch rng.IntN(3) {
		case 0:
			first, err := tr.First()
			if tr.IsEmpty() {
				require.ErrorIs(t, err, valley.ErrEmptyLandscape)

				continue
			}

			require.NoError(t, err)

			again, err := tr.First()
			require.NoError(t, err)
			assert.Equal(t, first, again)
			assert.Equal(t, before, tr.TotalTreasure())
		case 1:
			if tr.IsEmpty() {
				_, err := tr.Remove()
				require.ErrorIs(t, err, valley.ErrEmptyLandscape)

				continue
			}

			height, _, ok := tr.Valley()
			require.True(t, ok)

			first, err := tr.First()
			require.NoError(t, err)

			nonNegative := slices.Min(present) >= 0

			treasure, err := tr.Remove()
			require.NoError(t, err)
			assert.Equal(t, first, treasure)

			// The total only grows when no negative height can be averaged in.
			if nonNegative {
				assert.GreaterOrEqual(t, tr.TotalTreasure(), before)
			}

			idx := slices.Index(present, height)
			require.GreaterOrEqual(t, idx, 0)

			present = slices.Delete(present, idx, idx+1)
		default:
			height := rng.IntN(4)
			if distinct && rng.IntN(2) == 0 {
				height = high
				high++
			} else if distinct {
				height = low
				low--
			}

			tr.Insert(height)
			assert.Equal(t, before, tr.TotalTreasure())

			present = append(present, height)
		}

		require.NoError(t, tr.CheckInvariants())
		assert.ElementsMatch(t, present, tr.Heights())
		assert.Equal(t, len(present), tr.Len())
	}
}

func TestProperties_DistinctHeights(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))

	for range propertyRounds {
		runRandomOps(t, rng, true)
	}
}

func TestProperties_PlateauHeights(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(3, 4))

	for range propertyRounds {
		runRandomOps(t, rng, false)
	}
}

func TestProperties_NonNegativeTreasureNeverDecreases(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(5, 6))

	for range propertyRounds {
		tr := valley.New(randomLandscape(rng, true))
		total := tr.TotalTreasure()

		for range propertyOps {
			if rng.IntN(2) == 0 {
				tr.Insert(rng.IntN(propertyMaxHeight))

				continue
			}

			if tr.IsEmpty() {
				continue
			}

			_, err := tr.Remove()
			require.NoError(t, err)
			require.GreaterOrEqual(t, tr.TotalTreasure(), total)

			total = tr.TotalTreasure()
		}
	}
}
