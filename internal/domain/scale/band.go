package scale

import "fmt"

// Band partitions a range into equal slots, one per domain value, with no
// padding between slots.
type Band struct {
	domain []string
	index  map[string]int
	r0, r1 float64
}

// NewBand returns a band scale over the ordered domain. Duplicate keys keep
// their first position. An empty domain is rejected with ErrDegenerateDomain.
func NewBand(domain []string, r0, r1 float64) (Band, error) {
	b := Band{index: make(map[string]int, len(domain)), r0: r0, r1: r1}
	for _, k := range domain {
		if _, ok := b.index[k]; ok {
			continue
		}
		b.index[k] = len(b.domain)
		b.domain = append(b.domain, k)
	}
	if len(b.domain) == 0 {
		return Band{}, degenerate("band", "", fmt.Sprintf("%d values", 0))
	}
	return b, nil
}

// Len returns the domain cardinality.
func (b Band) Len() int { return len(b.domain) }

// Range returns the output interval.
func (b Band) Range() (r0, r1 float64) { return b.r0, b.r1 }

// Bandwidth returns the width of a single slot.
func (b Band) Bandwidth() float64 {
	return (b.r1 - b.r0) / float64(len(b.domain))
}

// Position returns the origin of key's slot.
func (b Band) Position(key string) (float64, bool) {
	i, ok := b.index[key]
	if !ok {
		return 0, false
	}
	return b.r0 + float64(i)*b.Bandwidth(), true
}
