package flatten

// DateHandling selects how a date property's (start, end) pair is
// projected into table columns.
type DateHandling string

const (
	// IgnoreEnd keeps only the start timestamp under the property name.
	// The end is discarded; lossy but right for single-date properties.
	IgnoreEnd DateHandling = "ignore_end"

	// Mangle emits two columns, "<name>_start" and "<name>_end".
	Mangle DateHandling = "mangle"

	// MultiIndex emits hierarchical (name, "start") and (name, "end")
	// columns, promoting the whole table to two-level headers.
	MultiIndex DateHandling = "multiindex"
)

// ParseDateHandling validates a policy name. The empty string resolves
// to IgnoreEnd, the default.
func ParseDateHandling(s string) (DateHandling, error) {
	switch DateHandling(s) {
	case "":
		return IgnoreEnd, nil
	case IgnoreEnd, Mangle, MultiIndex:
		return DateHandling(s), nil
	default:
		return "", &InvalidDateHandlingError{Value: s}
	}
}
