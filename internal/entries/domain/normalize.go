package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// timePattern accepts minutes:seconds with 1-2 minute digits and exactly
// two second digits in 00-59.
var timePattern = regexp.MustCompile(`^(\d{1,2}):([0-5]\d)$`)

// NormalizeFields converts an arbitrary request object into a canonical
// EntryFields. Missing or null values become empty strings, strings are
// trimmed, and the two duration fields are validated against m:ss.
// Malformed sub-fields degrade to "" instead of failing the request.
func NormalizeFields(raw map[string]any) EntryFields {
	return EntryFields{
		Date:               cleanString(raw["date"]),
		Foam:               cleanString(raw["foam"]),
		Fuel:               cleanString(raw["fuel"]),
		TestType:           cleanString(raw["testType"]),
		AirTemp:            cleanString(raw["airTemp"]),
		Wind:               cleanString(raw["wind"]),
		FuelTemp:           cleanString(raw["fuelTemp"]),
		SolutionTemp:       cleanString(raw["solutionTemp"]),
		ControlTime:        cleanTime(raw["controlTime"]),
		ExtinguishmentTime: cleanTime(raw["extinguishmentTime"]),
	}
}

func cleanString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		// JSON numbers decode as float64
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

// cleanTime validates m:ss and re-renders the minutes without a leading
// zero ("09:05" -> "9:05"). Anything else, including empty input,
// normalizes to "".
func cleanTime(v any) string {
	s := cleanString(v)
	if s == "" {
		return ""
	}
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	minutes, _ := strconv.Atoi(m[1])
	return fmt.Sprintf("%d:%s", minutes, m[2])
}
