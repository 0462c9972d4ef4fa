package generate

import "fmt"

// MaxPhoneAttempts bounds the redraws for a single unique phone number.
const MaxPhoneAttempts = 64

var areaCodes = []string{"201", "202", "203", "205", "206", "207", "208", "209", "210"}

// PhoneNumber returns a random AAA-NNN-NNNN number. It is not checked for uniqueness.
func (s *Source) PhoneNumber() string {
	local := s.rng.IntN(10_000_000)
	return fmt.Sprintf("%s-%03d-%04d", s.pick(areaCodes), local/10_000, local%10_000)
}

// PhoneSet tracks the customer phone numbers already in use.
type PhoneSet map[string]struct{}

func NewPhoneSet(existing ...string) PhoneSet {
	set := make(PhoneSet, len(existing))
	for _, number := range existing {
		set[number] = struct{}{}
	}
	return set
}

func (p PhoneSet) Contains(number string) bool {
	_, ok := p[number]
	return ok
}

// UniquePhoneNumber draws numbers until one is not in taken, then claims it.
func (s *Source) UniquePhoneNumber(taken PhoneSet) (string, error) {
	for attempt := 0; attempt < MaxPhoneAttempts; attempt++ {
		number := s.PhoneNumber()
		if !taken.Contains(number) {
			taken[number] = struct{}{}
			return number, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts (%d numbers taken)", ErrUniquenessViolation, MaxPhoneAttempts, len(taken))
}
