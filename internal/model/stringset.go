package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSet is an ordered set of strings stored as a JSON array column.
type StringSet []string

func (s StringSet) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSet) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = StringSet{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported type for StringSet: %T", src)
	}
	if len(raw) == 0 {
		*s = StringSet{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*s = StringSet(out)
	return nil
}
