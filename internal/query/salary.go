package query

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// HoursPerYear converts an hourly rate into an annual figure
const HoursPerYear = 2080

// Band is a half-open annual salary range [Min, Max). Max of zero means unbounded.
type Band struct {
	Key string
	Min float64
	Max float64
}

// SalaryBands are the selectable salary filters
var SalaryBands = []Band{
	{Key: "30-50k", Min: 30_000, Max: 50_000},
	{Key: "50-75k", Min: 50_000, Max: 75_000},
	{Key: "75-100k", Min: 75_000, Max: 100_000},
	{Key: "100-150k", Min: 100_000, Max: 150_000},
	{Key: "150k+", Min: 150_000},
}

// LookupBand finds the band for key. Unknown keys report false.
func LookupBand(key string) (Band, bool) {
	for _, b := range SalaryBands {
		if strings.EqualFold(b.Key, key) {
			return b, true
		}
	}
	return Band{}, false
}

// Matches reports whether the salary range parsed from display overlaps b.
// Unparseable salaries never match.
func (b Band) Matches(display string) bool {
	lo, hi, ok := ParseSalary(display)
	if !ok {
		return false
	}
	if hi < b.Min {
		return false
	}
	if b.Max > 0 && lo >= b.Max {
		return false
	}
	return true
}

var amountPattern = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)\s*([kK])?`)

// ParseSalary reads every amount in a display string such as "$90k - $110k",
// "$120,000+" or "$45/hr" and returns the annual range it spans.
func ParseSalary(display string) (lo, hi float64, ok bool) {
	matches := amountPattern.FindAllStringSubmatch(display, -1)
	if len(matches) == 0 {
		return 0, 0, false
	}

	multiplier := 1.0
	lower := strings.ToLower(display)
	if strings.Contains(lower, "/hr") || strings.Contains(lower, "/hour") {
		multiplier = HoursPerYear
	}

	lo, hi = math.Inf(1), math.Inf(-1)
	for _, m := range matches {
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		if m[2] != "" {
			v *= 1000
		}
		v *= multiplier
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if math.IsInf(lo, 1) {
		return 0, 0, false
	}

	// "$200,000+" has no ceiling
	if strings.HasSuffix(strings.TrimSpace(display), "+") {
		hi = math.Inf(1)
	}
	return lo, hi, true
}
