package seed

import (
	"math/rand/v2"
	"sync"

	"github.com/albapepper/matchday-data/internal/provider"
)

// Skill ranges are inclusive.
const (
	baselineMin = 4
	baselineMax = 8
)

type positionClass int

const (
	classNone positionClass = iota
	classKeeper
	classDefender
	classMidfielder
	classAttacker
)

var positionClasses = map[string]positionClass{
	"GK":  classKeeper,
	"CB":  classDefender,
	"LB":  classDefender,
	"RB":  classDefender,
	"CM":  classMidfielder,
	"CDM": classMidfielder,
	"CAM": classMidfielder,
	"LW":  classAttacker,
	"RW":  classAttacker,
	"ST":  classAttacker,
	"CF":  classAttacker,
}

// SkillGenerator produces placeholder radar values biased by position.
// It is safe for concurrent use.
type SkillGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSkillGenerator returns a generator. A nil seed draws from the runtime
// source, so output differs between runs; a fixed seed makes it repeatable.
func NewSkillGenerator(seed *uint64) *SkillGenerator {
	var src rand.Source
	if seed == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	} else {
		src = rand.NewPCG(*seed, *seed)
	}
	return &SkillGenerator{rng: rand.New(src)}
}

// Generate returns a skill vector for position. Unrecognized positions,
// including "" and "Unknown", get baseline values only.
func (g *SkillGenerator) Generate(position string) provider.Skills {
	g.mu.Lock()
	defer g.mu.Unlock()

	s := provider.Skills{
		Passing:   g.between(baselineMin, baselineMax),
		Dribbling: g.between(baselineMin, baselineMax),
		Speed:     g.between(baselineMin, baselineMax),
		Strength:  g.between(baselineMin, baselineMax),
		Vision:    g.between(baselineMin, baselineMax),
		Defending: g.between(baselineMin, baselineMax),
	}

	switch positionClasses[position] {
	case classKeeper:
		s.Defending = g.between(7, 10)
		s.Strength = g.between(6, 9)
		s.Passing = g.between(4, 7)
		s.Dribbling = g.between(2, 5)
		s.Speed = g.between(4, 7)
	case classDefender:
		s.Defending = g.between(7, 10)
		s.Strength = g.between(6, 9)
		s.Speed = g.between(5, 8)
	case classMidfielder:
		s.Passing = g.between(7, 10)
		s.Vision = g.between(7, 10)
		s.Dribbling = g.between(6, 9)
	case classAttacker:
		s.Speed = g.between(7, 10)
		s.Dribbling = g.between(7, 10)
		s.Passing = g.between(5, 8)
	}
	return s
}

func (g *SkillGenerator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}
