package provider

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Sources disagree on scalar encodings: the league API sends ids and flags
// as strings ("1", "10"), the breakdown export sends plain numbers, and
// either may send null or omit the key. The Flex types absorb all of these
// at decode time so normalizers never see interface{} values.

// FlexString decodes a JSON string or number into its string form.
// null, objects and arrays decode to "".
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		*s = ""
		return nil
	}
	switch data[0] {
	case '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
	case 'n', '{', '[':
		*s = ""
	case 't', 'f':
		*s = FlexString(data)
	default:
		// Keep the literal so 1061429 stays "1061429" rather than "1.061429e+06".
		*s = FlexString(data)
	}
	return nil
}

// String returns the decoded value.
func (s FlexString) String() string { return string(s) }

// Ptr returns nil for an empty value.
func (s FlexString) Ptr() *string { return StringPtr(string(s)) }

// Or returns fallback when the value is empty.
func (s FlexString) Or(fallback string) string {
	if s == "" {
		return fallback
	}
	return string(s)
}

// FlexInt decodes a JSON number or numeric string holding an integer.
// Fractional, null and unparsable values leave Valid false and Value zero.
// Present records that the key appeared at all, null included.
type FlexInt struct {
	Value   int
	Valid   bool
	Present bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	*n = FlexInt{Present: true}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return nil
		}
		raw = strings.TrimSpace(v)
	}

	if v, err := strconv.Atoi(raw); err == nil {
		n.Value, n.Valid = v, true
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == math.Trunc(f) &&
		f >= math.MinInt32 && f <= math.MaxInt32 {
		n.Value, n.Valid = int(f), true
	}
	return nil
}

// Ptr returns nil when the value is not valid.
func (n FlexInt) Ptr() *int {
	if !n.Valid {
		return nil
	}
	return IntPtr(n.Value)
}

// Or returns fallback when the value is not valid.
func (n FlexInt) Or(fallback int) int {
	if !n.Valid {
		return fallback
	}
	return n.Value
}

// Token keeps a scalar's raw JSON encoding so flags can be compared against
// the exact literal a source uses: the string "1" is not the number 1.
// An absent key leaves the token empty.
type Token []byte

// UnmarshalJSON implements json.Unmarshaler.
func (t *Token) UnmarshalJSON(data []byte) error {
	*t = append((*t)[:0], bytes.TrimSpace(data)...)
	return nil
}

// IsString reports whether the token is the JSON string s.
func (t Token) IsString(s string) bool {
	if len(t) == 0 || t[0] != '"' {
		return false
	}
	var v string
	if err := json.Unmarshal(t, &v); err != nil {
		return false
	}
	return v == s
}

// IsNumber reports whether the token is a JSON number equal to n.
func (t Token) IsNumber(n float64) bool {
	if len(t) == 0 || (t[0] != '-' && (t[0] < '0' || t[0] > '9')) {
		return false
	}
	f, err := strconv.ParseFloat(string(t), 64)
	return err == nil && f == n
}

// Flag reports whether a league API flag is the string "1".
func Flag(t Token) bool {
	return t.IsString("1")
}
