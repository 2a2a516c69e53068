package tasks

import "strings"

// The database stores uppercase underscore statuses while the UI speaks
// lowercase dashed ones. Both directions tolerate the synonyms that have
// accumulated across orchestrator versions.

// ValidStatuses are the accepted UI-side status tokens.
var ValidStatuses = []string{"pending", "in-progress", "in_progress", "completed", "cancelled", "deferred", "blocked"}

// ValidPriorities are the accepted UI-side priority tokens.
var ValidPriorities = []string{"high", "medium", "low"}

var statusToUI = map[string]string{
	"IN_PROGRESS": "in-progress",
	"INPROGRESS":  "in-progress",
	"DOING":       "in-progress",
	"COMPLETED":   "completed",
	"DONE":        "completed",
	"PENDING":     "pending",
	"TODO":        "pending",
	"BLOCKED":     "blocked",
	"CANCELLED":   "cancelled",
	"DEFERRED":    "deferred",
}

var statusToStorage = map[string]string{
	"pending":     "PENDING",
	"in-progress": "IN_PROGRESS",
	"completed":   "COMPLETED",
	"cancelled":   "CANCELLED",
	"deferred":    "DEFERRED",
	"blocked":     "BLOCKED",
}

// NormalizeStatus maps a stored status value to its UI form. Unknown
// values fall back to their lowercase form rather than erroring.
func NormalizeStatus(raw string) string {
	if raw == "" {
		return raw
	}
	s := strings.ToUpper(strings.TrimSpace(raw))
	if ui, ok := statusToUI[s]; ok {
		return ui
	}
	return strings.ToLower(raw)
}

// StorageStatus maps a UI status token to its storage form. in_progress
// is accepted as a synonym of in-progress. The second return is false
// for tokens outside the vocabulary.
func StorageStatus(input string) (string, bool) {
	normalized := strings.ReplaceAll(strings.ToLower(input), "_", "-")
	stored, ok := statusToStorage[normalized]
	return stored, ok
}

// NormalizeUIStatus returns the canonical UI token for an input token
// (lowercased, underscores dashed), without validating it.
func NormalizeUIStatus(input string) string {
	return strings.ReplaceAll(strings.ToLower(input), "_", "-")
}

// StoragePriority maps a UI priority token to its storage form. The
// second return is false for tokens outside {high, medium, low}.
func StoragePriority(input string) (string, bool) {
	normalized := strings.ToLower(input)
	switch normalized {
	case "high", "medium", "low":
		return strings.ToUpper(normalized), true
	default:
		return "", false
	}
}
