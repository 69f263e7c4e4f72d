package expense

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DescriptionPlaceholder = "No description available"

// Description is free text. Older data stored numbers here, so both are accepted.
type Description string

func (d *Description) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		*d = ""
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("description: %w", err)
		}
		*d = Description(s)
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return fmt.Errorf("description: %w", err)
		}
		*d = Description(n.String())
	}
	return nil
}

// Record is one expense. Records are only ever prepended; never edited or removed.
type Record struct {
	ID          string      `json:"id,omitempty"`
	Category    string      `json:"category"`
	Description Description `json:"description,omitempty"`
	CreatedAt   string      `json:"task_createdAt"`
	Amount      float64     `json:"amount"`
	Image       string      `json:"image,omitempty"`
}

func NewRecord(dto CreateExpenseDTO, image string) Record {
	return Record{
		ID:          uuid.NewString(),
		Category:    dto.Category,
		Description: Description(strings.TrimSpace(dto.Description)),
		CreatedAt:   strings.TrimSpace(dto.Date),
		Amount:      dto.Amount,
		Image:       image,
	}
}

// UnmarshalJSON tolerates amounts persisted as numeric strings.
func (r *Record) UnmarshalJSON(data []byte) error {
	type alias Record
	aux := struct {
		*alias
		Amount json.RawMessage `json:"amount"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Amount = parseAmount(aux.Amount)
	return nil
}

func parseAmount(raw json.RawMessage) float64 {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return 0
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		text = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Date is the calendar date of the record in local time.
func (r Record) Date() (time.Time, bool) {
	return ParseDate(r.CreatedAt)
}

func (r Record) InMonth(month time.Month, year int) bool {
	d, ok := r.Date()
	if !ok {
		return false
	}
	return d.Month() == month && d.Year() == year
}

// DescriptionText returns the description, or the placeholder when there is none.
func (r Record) DescriptionText() string {
	if strings.TrimSpace(string(r.Description)) == "" {
		return DescriptionPlaceholder
	}
	return string(r.Description)
}

// AmountText is the shortest decimal form of the amount, e.g. "12.5" or "8".
func (r Record) AmountText() string {
	return strconv.FormatFloat(r.Amount, 'f', -1, 64)
}

var localLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate accepts date-only, datetime-local and RFC 3339 values. Values
// without a zone are read in the local zone; zoned values are converted to it.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(time.Local), true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// startOfDay truncates t to local midnight.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
