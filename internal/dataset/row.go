package dataset

import (
	"strconv"
)

// Field is a single named value of a row.
type Field struct {
	Key   string
	Value any
}

// Row is one observation: an ordered mapping of field name to a dynamic
// value (string, float64, bool or nil). A Row is never modified in place;
// With returns a new row.
type Row struct {
	keys   []string
	values map[string]any
}

// NewRow builds a row from fields in the given order. A repeated key keeps
// its first position and takes the last value.
func NewRow(fields ...Field) Row {
	r := Row{
		keys:   make([]string, 0, len(fields)),
		values: make(map[string]any, len(fields)),
	}
	for _, f := range fields {
		if _, ok := r.values[f.Key]; !ok {
			r.keys = append(r.keys, f.Key)
		}
		r.values[f.Key] = f.Value
	}
	return r
}

// With returns a copy of r with key set to value. An existing key keeps its
// position; a new key is appended.
func (r Row) With(key string, value any) Row {
	fields := r.Fields()
	for i := range fields {
		if fields[i].Key == key {
			fields[i].Value = value
			return NewRow(fields...)
		}
	}
	return NewRow(append(fields, Field{Key: key, Value: value})...)
}

func (r Row) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Text returns the printable form of the value stored under key, or "" when
// the key is absent.
func (r Row) Text(key string) string {
	v, ok := r.values[key]
	if !ok {
		return ""
	}
	return FormatValue(v)
}

func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r Row) Fields() []Field {
	out := make([]Field, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, Field{Key: k, Value: r.values[k]})
	}
	return out
}

func (r Row) Len() int { return len(r.keys) }

// FormatValue renders a dynamic cell value the way it is written to CSV and
// to the text table.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case []byte:
		return string(x)
	default:
		return ""
	}
}

// parseCell infers the dynamic type of a CSV cell: numbers become float64,
// "true"/"false" become bool, everything else stays a string. A cell is only
// converted when FormatValue writes it back unchanged, so text such as
// "1.50" or "007" survives a reload.
func parseCell(s string) any {
	if s == "true" || s == "false" {
		return s == "true"
	}
	if looksNumeric(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil && FormatValue(f) == s {
			return f
		}
	}
	return s
}

func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	if c == '-' || c == '+' || c == '.' {
		if len(s) == 1 {
			return false
		}
		c = s[1]
		if c == '.' && len(s) > 2 {
			c = s[2]
		}
	}
	return c >= '0' && c <= '9'
}
