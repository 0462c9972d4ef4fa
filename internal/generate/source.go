package generate

import (
	"math/rand/v2"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// Source is the random source threaded through every generator. A Source is
// not safe for concurrent use.
type Source struct {
	rng   *rand.Rand
	faker *gofakeit.Faker
	now   time.Time
}

// NewSource returns a Source seeded with seed. All dates are drawn relative to
// now, so a fixed seed and a fixed now reproduce the same dataset.
func NewSource(seed uint64, now time.Time) *Source {
	pcg := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Source{
		rng:   rand.New(pcg),
		faker: gofakeit.NewFaker(pcg, false),
		now:   now.UTC(),
	}
}

// Now returns the reference clock of the source.
func (s *Source) Now() time.Time {
	return s.now
}

// Today returns the reference date at midnight UTC.
func (s *Source) Today() time.Time {
	y, m, d := s.now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Source) pick(values []string) string {
	return values[s.rng.IntN(len(values))]
}

// intRange returns a uniform integer in [min, max].
func (s *Source) intRange(min, max int) int {
	return min + s.rng.IntN(max-min+1)
}

// floatRange returns a uniform float in [min, max).
func (s *Source) floatRange(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// dateBetween returns a whole day uniformly chosen in [start, end].
func (s *Source) dateBetween(start, end time.Time) time.Time {
	days := int(end.Sub(start).Hours() / 24)
	if days <= 0 {
		return start
	}
	return start.AddDate(0, 0, s.rng.IntN(days+1))
}

// timeBetween returns an instant uniformly chosen in [start, end] at second precision.
func (s *Source) timeBetween(start, end time.Time) time.Time {
	secs := int64(end.Sub(start) / time.Second)
	if secs <= 0 {
		return start.Truncate(time.Second)
	}
	return start.Truncate(time.Second).Add(time.Duration(s.rng.Int64N(secs+1)) * time.Second)
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
