package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// timestampLayouts are the ISO-8601 forms accepted in seed files and event payloads
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseTimestamp reads an ISO-8601 instant or a plain date. Values without a
// zone are taken as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: want RFC3339 or YYYY-MM-DD", value)
}

// timestamp decodes like time.Time but also accepts date-only values.
// Encoding is left to time.Time, which always writes RFC3339.
type timestamp time.Time

func (t *timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid timestamp: %w", err)
	}

	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = timestamp(parsed)
	return nil
}

// assign copies a decoded value into dst; absent or null values leave dst unchanged
func (t *timestamp) assign(dst *time.Time) {
	if t != nil {
		*dst = time.Time(*t)
	}
}
