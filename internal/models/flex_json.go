package models

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// matchRecordFieldMap caches JSON tag -> struct field index mappings
var (
	matchRecordFieldMap     map[string]int
	matchRecordFieldMapOnce sync.Once
)

func getMatchRecordFieldMap() map[string]int {
	matchRecordFieldMapOnce.Do(func() {
		t := reflect.TypeOf(MatchRecord{})
		matchRecordFieldMap = make(map[string]int, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			tag := t.Field(i).Tag.Get("json")
			if tag == "" || tag == "-" {
				continue
			}
			name := strings.Split(tag, ",")[0]
			matchRecordFieldMap[name] = i
		}
	})
	return matchRecordFieldMap
}

// UnmarshalJSON accepts both native and string-encoded numbers. Scraped
// tables and some provider payloads quote every cell ("aces": "12.0"),
// and older cache files were written from those values unchanged.
func (m *MatchRecord) UnmarshalJSON(data []byte) error {
	// Alias prevents infinite recursion
	type Alias MatchRecord
	a := (*Alias)(m)

	// Fast path: try standard unmarshal (works when all types match natively)
	if err := json.Unmarshal(data, a); err == nil {
		return nil
	}

	// Slow path: field-by-field with string-to-native coercion
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flex unmarshal: %w", err)
	}

	*m = MatchRecord{}
	fieldMap := getMatchRecordFieldMap()
	v := reflect.ValueOf(a).Elem()

	for key, rawVal := range raw {
		idx, ok := fieldMap[key]
		if !ok {
			continue
		}

		fv := v.Field(idx)
		if !fv.CanSet() {
			continue
		}

		ptr := reflect.New(fv.Type())
		if err := json.Unmarshal(rawVal, ptr.Interface()); err == nil {
			fv.Set(ptr.Elem())
			continue
		}

		// Value is a JSON string but target is numeric: coerce
		if len(rawVal) > 1 && rawVal[0] == '"' {
			var s string
			if err := json.Unmarshal(rawVal, &s); err != nil {
				continue
			}
			if s == "" {
				continue
			}
			coerceStringToField(fv, s)
		}
	}

	return nil
}

// coerceStringToField converts a string value to the field's native type.
func coerceStringToField(fv reflect.Value, s string) {
	switch fv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// ParseFloat handles "12.0" → truncate to int
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			fv.SetInt(int64(n))
		}
	case reflect.String:
		fv.SetString(s)
	}
}
