package ordering

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Position keys are decimal strings ("1.0", "2.5", "10.0"). They are compared
// by numeric value; keys that do not parse fall back to plain string
// comparison so a corrupt key can never take the sort down with it. There is
// no renormalization pass: duplicate keys are legal and callers break ties on
// row creation time.

// Compare orders two position keys. Returns -1, 0 or 1.
func Compare(a, b string) int {
	da, errA := decimal.NewFromString(strings.TrimSpace(a))
	db, errB := decimal.NewFromString(strings.TrimSpace(b))
	if errA != nil || errB != nil {
		return strings.Compare(a, b)
	}
	return da.Cmp(db)
}

// Less reports whether key a sorts before key b.
func Less(a, b string) bool {
	return Compare(a, b) < 0
}

// Next computes the default position for a new item: max(existing) + 1,
// formatted with one decimal place. An empty set yields "1.0". Unparseable
// keys are ignored when finding the max.
func Next(existing []string) string {
	max := decimal.Zero
	found := false
	for _, key := range existing {
		d, err := decimal.NewFromString(strings.TrimSpace(key))
		if err != nil {
			continue
		}
		if !found || d.GreaterThan(max) {
			max = d
			found = true
		}
	}
	if !found {
		return Format(decimal.NewFromInt(1))
	}
	return Format(max.Add(decimal.NewFromInt(1)))
}

// Parse converts a key into a decimal, defaulting to zero on bad input.
func Parse(key string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(key))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Format renders a position with one decimal place.
func Format(d decimal.Decimal) string {
	return d.StringFixed(1)
}
