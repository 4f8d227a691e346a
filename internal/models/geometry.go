package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LineString is an ordered sequence of [lon, lat] vertices representing a
// drawn route. Length is always recomputed from the vertices, never stored.
type LineString [][2]float64

// Clone returns a deep copy of the line
func (l LineString) Clone() LineString {
	if l == nil {
		return nil
	}
	out := make(LineString, len(l))
	copy(out, l)
	return out
}

// First returns the first vertex, or false for an empty line
func (l LineString) First() ([2]float64, bool) {
	if len(l) == 0 {
		return [2]float64{}, false
	}
	return l[0], true
}

// Last returns the last vertex, or false for an empty line
func (l LineString) Last() ([2]float64, bool) {
	if len(l) == 0 {
		return [2]float64{}, false
	}
	return l[len(l)-1], true
}

// Value implements the driver.Valuer interface (stored as JSONB)
func (l LineString) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *LineString) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into LineString", src)
	}
	return json.Unmarshal(data, l)
}
