package repositories

import "encoding/json"

// jsonbValue converts a string set to JSONB format for database insertion.
// Returns nil for empty slices to store NULL in the database.
func jsonbValue(v []string) any {
	if len(v) == 0 {
		return nil
	}
	return v
}

// jsonbSlice unmarshals a JSONB string-array column from the database.
// NULL and the literal "null" both decode to an empty set.
func jsonbSlice(data []byte) ([]string, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// nullString returns nil if the string is empty, otherwise returns the string pointer.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// stringValue returns the empty string for nil pointers.
func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
