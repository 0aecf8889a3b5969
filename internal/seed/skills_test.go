package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/albapepper/matchday-data/internal/provider"
)

func assertBetween(t *testing.T, name string, v, lo, hi int) {
	t.Helper()
	assert.GreaterOrEqual(t, v, lo, name)
	assert.LessOrEqual(t, v, hi, name)
}

func TestSkillGenerator_Ranges(t *testing.T) {
	g := NewSkillGenerator(nil)

	tests := []struct {
		position string
		check    func(t *testing.T, s provider.Skills)
	}{
		{"GK", func(t *testing.T, s provider.Skills) {
			assertBetween(t, "defending", s.Defending, 7, 10)
			assertBetween(t, "strength", s.Strength, 6, 9)
			assertBetween(t, "passing", s.Passing, 4, 7)
			assertBetween(t, "dribbling", s.Dribbling, 2, 5)
			assertBetween(t, "speed", s.Speed, 4, 7)
			assertBetween(t, "vision", s.Vision, 4, 8)
		}},
		{"CB", func(t *testing.T, s provider.Skills) {
			assertBetween(t, "defending", s.Defending, 7, 10)
			assertBetween(t, "strength", s.Strength, 6, 9)
			assertBetween(t, "speed", s.Speed, 5, 8)
			assertBetween(t, "passing", s.Passing, 4, 8)
		}},
		{"CDM", func(t *testing.T, s provider.Skills) {
			assertBetween(t, "passing", s.Passing, 7, 10)
			assertBetween(t, "vision", s.Vision, 7, 10)
			assertBetween(t, "dribbling", s.Dribbling, 6, 9)
			assertBetween(t, "defending", s.Defending, 4, 8)
		}},
		{"ST", func(t *testing.T, s provider.Skills) {
			assertBetween(t, "speed", s.Speed, 7, 10)
			assertBetween(t, "dribbling", s.Dribbling, 7, 10)
			assertBetween(t, "passing", s.Passing, 5, 8)
			assertBetween(t, "strength", s.Strength, 4, 8)
		}},
		{provider.UnknownPosition, func(t *testing.T, s provider.Skills) {
			for name, v := range map[string]int{
				"passing": s.Passing, "dribbling": s.Dribbling, "speed": s.Speed,
				"strength": s.Strength, "vision": s.Vision, "defending": s.Defending,
			} {
				assertBetween(t, name, v, baselineMin, baselineMax)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.position, func(t *testing.T) {
			for range 200 {
				tt.check(t, g.Generate(tt.position))
			}
		})
	}
}

func TestSkillGenerator_SeedIsRepeatable(t *testing.T) {
	seed := uint64(42)
	a := NewSkillGenerator(&seed)
	b := NewSkillGenerator(&seed)

	for _, pos := range []string{"GK", "CM", "", "RW"} {
		assert.Equal(t, a.Generate(pos), b.Generate(pos))
	}
}
