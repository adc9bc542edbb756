package convert

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"sales-crm/internal/datastore"
)

// DateLayout is the stored form of date-only values such as report dates.
const DateLayout = "2006-01-02"

// timeLayouts are tried in order when parsing stored timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	DateLayout,
}

// FieldError reports a column whose stored value cannot be decoded.
type FieldError struct {
	Column string
	Value  any
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("convert %s=%v: %v", e.Column, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// reader decodes columns of a single row and remembers the first failure.
type reader struct {
	row datastore.Row
	err error
}

func (r *reader) fail(col string, err error) {
	if r.err == nil {
		r.err = &FieldError{Column: col, Value: r.row[col], Err: err}
	}
}

func (r *reader) str(col string) string {
	switch v := r.row[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func (r *reader) optStr(col string) *string {
	s := r.str(col)
	if s == "" {
		return nil
	}
	return &s
}

func (r *reader) optTime(col string) *time.Time {
	switch v := r.row[col].(type) {
	case nil:
		return nil
	case time.Time:
		return &v
	}
	s := r.str(col)
	if s == "" {
		return nil
	}
	t, err := ParseTime(s)
	if err != nil {
		r.fail(col, err)
		return nil
	}
	return &t
}

func (r *reader) instant(col string) time.Time {
	if t := r.optTime(col); t != nil {
		return *t
	}
	return time.Time{}
}

func (r *reader) number(col string) float64 {
	switch v := r.row[col].(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	f, err := strconv.ParseFloat(r.str(col), 64)
	if err != nil {
		r.fail(col, err)
	}
	return f
}

func (r *reader) integer(col string) int {
	switch v := r.row[col].(type) {
	case nil:
		return 0
	case int64:
		return int(v)
	case int32:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	n, err := strconv.Atoi(r.str(col))
	if err != nil {
		r.fail(col, err)
	}
	return n
}

// boolean accepts native booleans, sqlite's 0/1 integers and their text forms.
func (r *reader) boolean(col string, def bool) bool {
	switch v := r.row[col].(type) {
	case nil:
		return def
	case bool:
		return v
	case int64:
		return v != 0
	case int:
		return v != 0
	}
	b, err := strconv.ParseBool(strings.TrimSpace(r.str(col)))
	if err != nil {
		r.fail(col, err)
		return def
	}
	return b
}

// ParseTime parses a stored timestamp in any of the accepted layouts.
// Values without a zone are read as UTC.
func ParseTime(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// FormatTime renders an instant the way the store expects it.
func FormatTime(t time.Time) string {
	return t.UTC().Format(datastore.TimeLayout)
}

// FormatDate renders the calendar date of t in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func optTimeValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return FormatTime(*t)
}

func optStrValue(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
