package constraint

import (
	"regexp"
	"strings"
)

var (
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	uuidRe     = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	dateRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})?$`)
)

// checkFormat reports a problem description for a string value that
// fails the named format, or "" when the value passes. Unknown formats
// pass, matching the engine's tolerant keyword handling.
func checkFormat(value, format string) string {
	switch format {
	case "email":
		if !emailRe.MatchString(value) {
			return "invalid email format"
		}
	case "url", "uri":
		if !strings.Contains(value, "://") {
			return "invalid URL format"
		}
	case "uuid":
		if !uuidRe.MatchString(strings.ToLower(value)) {
			return "invalid UUID format"
		}
	case "date":
		if !dateRe.MatchString(value) {
			return "invalid date format (expected YYYY-MM-DD)"
		}
	case "date-time":
		if !dateTimeRe.MatchString(value) {
			return "invalid date-time format (expected ISO 8601)"
		}
	}
	return ""
}
