package assistant

import (
	"fmt"
	"sort"
	"strings"
)

// snippetFields fixes, per collection, which projected fields lead the
// snippet and in what order. Fields pruned by role projection simply drop
// out of the snippet.
var snippetFields = map[string][]string{
	"patients":      {"name", "medical_record_number", "gender", "birth_date"},
	"doctors":       {"name", "specialization"},
	"registrations": {"patient_name", "doctor_name", "poli", "registration_date", "status", "complaint"},
	"examinations":  {"patient_name", "doctor_name", "examination_date", "diagnosis", "prescription"},
	"schedules":     {"doctor_name", "specialization", "day", "date", "start_time", "end_time"},
}

// renderSnippet builds the short user-facing line for one source from its
// already-projected fields.
func renderSnippet(collection string, fields map[string]any) string {
	var parts []string
	seen := make(map[string]bool)

	for _, key := range snippetFields[collection] {
		if v, ok := fields[key]; ok && v != nil && fmt.Sprint(v) != "" {
			parts = append(parts, fmt.Sprint(v))
			seen[key] = true
		}
	}

	// Unlisted fields trail in a stable order so nothing visible is lost.
	rest := make([]string, 0, len(fields))
	for key := range fields {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		if v := fields[key]; v != nil && fmt.Sprint(v) != "" {
			parts = append(parts, fmt.Sprintf("%s: %v", key, v))
		}
	}

	return strings.Join(parts, " | ")
}
