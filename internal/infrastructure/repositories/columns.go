package repositories

import (
	"github.com/volatiletech/null/v8"
)

// jsonColumn renders a nullable JSON entity field into its column value,
// falling back to the column's empty literal ("{}" or "[]")
func jsonColumn(j null.JSON, empty string) string {
	if !j.Valid || len(j.JSON) == 0 {
		return empty
	}
	return string(j.JSON)
}

// jsonValue parses a JSON column back into a nullable entity field; the
// empty literal maps to null
func jsonValue(s, empty string) null.JSON {
	if s == "" || s == empty {
		return null.JSON{}
	}
	return null.JSONFrom([]byte(s))
}

// stringColumn maps an empty varchar column to a null string
func stringColumn(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
