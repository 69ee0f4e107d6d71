package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"TaskBackend/models"
)

// Field is one named value in a proposed field set. Proposed sets are ordered
// slices, not maps, so the history entries a mutation appends come out in a
// stable order.
type Field struct {
	Name  string
	Value interface{}
}

// diff compares each proposed field against the existing snapshot and returns
// one history entry per field whose canonical string changed. Fields that
// render identically produce nothing, so re-submitting the same values
// appends zero entries. All entries of one call share updatedBy and the
// same timestamp.
func diff(existing map[string]interface{}, proposed []Field, updatedBy string, now time.Time) []models.HistoryEntry {
	var entries []models.HistoryEntry
	for _, f := range proposed {
		oldStr := canonical(existing[f.Name])
		newStr := canonical(f.Value)
		if oldStr == newStr {
			continue
		}
		entries = append(entries, models.HistoryEntry{
			Field:     f.Name,
			OldValue:  oldStr,
			NewValue:  newStr,
			UpdatedBy: updatedBy,
			UpdatedAt: now,
		})
	}
	return entries
}

// canonical renders a value to the string form stored in history entries.
// The sentinel for absent is "": nil pointers, nil slices and missing map
// keys all render empty. An explicit empty collection renders as "[]",
// which is a real change from absent. Timestamps render as RFC 3339 in UTC,
// collections and embedded structs as compact JSON.
func canonical(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case models.Status:
		return string(val)
	case models.Priority:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case *time.Time:
		if val == nil {
			return ""
		}
		return val.UTC().Format(time.RFC3339)
	case []string:
		if val == nil {
			return ""
		}
		return jsonString(val)
	case []models.Comment:
		if val == nil {
			return ""
		}
		return jsonString(val)
	default:
		return jsonString(val)
	}
}

func jsonString(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
