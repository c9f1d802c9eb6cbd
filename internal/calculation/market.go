package calculation

import (
	"math"
	"math/rand"

	"github.com/shopspring/decimal"
)

// Fixed distribution parameters of the stochastic market model
const (
	ReturnVolatility    = 0.15
	InflationMean       = 0.03
	InflationVolatility = 0.02
)

// trialSeed derives the seed of one trial from the run seed. Both inputs pass
// through splitmix64, so runs with adjacent seeds share no trial streams.
func trialSeed(seed int64, trial int) int64 {
	return int64(splitmix64(splitmix64(uint64(seed)) + uint64(trial)))
}

func splitmix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// marketSampler draws yearly market conditions for one trial.
// Each trial owns its sampler, so draws never depend on scheduling.
type marketSampler struct {
	rng *rand.Rand
	mu  float64
}

// newMarketSampler creates a sampler whose log-normal returns have arithmetic mean growthRate.
// For ln(1+R) ~ N(mu, sigma^2), E[1+R] = exp(mu + sigma^2/2), so mu = ln(1+g) - sigma^2/2.
func newMarketSampler(seed int64, growthRate float64) *marketSampler {
	return &marketSampler{
		rng: rand.New(rand.NewSource(seed)),
		mu:  math.Log1p(growthRate) - ReturnVolatility*ReturnVolatility/2,
	}
}

// boxMuller returns a standard normal variate.
// u1 is drawn from (0,1] so log(u1) is always finite.
func (s *marketSampler) boxMuller() float64 {
	u1 := 1 - s.rng.Float64()
	u2 := s.rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// annualReturn draws a log-normal return; the result is always above -100%
func (s *marketSampler) annualReturn() float64 {
	return math.Exp(s.mu+ReturnVolatility*s.boxMuller()) - 1
}

// inflation draws a normal inflation rate floored at zero
func (s *marketSampler) inflation() float64 {
	return math.Max(0, InflationMean+InflationVolatility*s.boxMuller())
}

// next draws one year. The return is always drawn before inflation.
func (s *marketSampler) next() marketYear {
	r := s.annualReturn()
	inf := s.inflation()
	return marketYear{
		GrowthFactor: decimal.NewFromFloat(1 + r).Round(10),
		Inflation:    decimal.NewFromFloat(inf).Round(6),
	}
}
