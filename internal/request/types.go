package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// Date is an optional date field. Clients send either "2006-01-02" or an
// RFC3339 timestamp; null, an empty string or an absent key all leave it unset.
type Date struct {
	Time  time.Time
	Valid bool
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string")
	}

	s = strings.TrimSpace(s)
	if s == "" {
		*d = Date{}
		return nil
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			*d = Date{Time: t, Valid: true}
			return nil
		}
	}

	return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
}

// Ptr returns nil for an unset date.
func (d Date) Ptr() *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

// Number is an optional numeric field that also accepts numeric strings such as "25000".
type Number struct {
	Value float64
	Valid bool
}

func (n *Number) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*n = Number{}
		return nil
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*n = Number{}
			return nil
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", raw)
	}

	*n = Number{Value: v, Valid: true}
	return nil
}

// Ptr returns nil for an unset number.
func (n Number) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}
