package flatten

import "fmt"

// UnsupportedPropertyError reports a property type the normalizer does
// not understand. It is fatal: silently dropping an unknown property
// would corrupt the extracted table.
type UnsupportedPropertyError struct {
	Type string
}

func (e *UnsupportedPropertyError) Error() string {
	return fmt.Sprintf("flatten: unsupported property type %q", e.Type)
}

// InvalidDateHandlingError reports an unrecognized date-handling policy
// name. It is raised before any fetching begins.
type InvalidDateHandlingError struct {
	Value string
}

func (e *InvalidDateHandlingError) Error() string {
	return fmt.Sprintf("flatten: invalid date handling %q (want ignore_end, mangle or multiindex)", e.Value)
}
