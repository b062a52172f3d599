package utils

import (
	"fmt"
	"strconv"
)

// ToString converts various types to string. Spreadsheet cells arrive from
// the Sheets API as any, so numeric cells must stringify cleanly.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		// Whole-number cells should read as "25", not "25.000000".
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
