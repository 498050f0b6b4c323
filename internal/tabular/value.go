package tabular

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatValue renders a normalized cell value as a string for text
// output. nil and Missing render as the empty string.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case missing:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format(time.RFC3339)
	case *DateSpan:
		if val == nil {
			return ""
		}
		return formatSpan(*val)
	case DateSpan:
		return formatSpan(val)
	case []string:
		return strings.Join(val, ", ")
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = FormatValue(e)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// formatSpan renders a date span as "start/end", or just the start when
// the end is absent.
func formatSpan(s DateSpan) string {
	start := ""
	if s.Start != nil {
		start = s.Start.Format(time.RFC3339)
	}
	if s.End == nil {
		return start
	}
	return start + "/" + s.End.Format(time.RFC3339)
}
