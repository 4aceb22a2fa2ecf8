package repository

// FilterMode selects which weeks enter the seasonality aggregation,
// conditioned on the direction of the chronologically preceding week.
type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterAfterUp   FilterMode = "after_up"
	FilterAfterDown FilterMode = "after_down"
)

// IsValidFilter returns true if f is a supported filter mode.
func IsValidFilter(f FilterMode) bool {
	switch f {
	case FilterAll, FilterAfterUp, FilterAfterDown:
		return true
	default:
		return false
	}
}

// DefaultFilter returns the default filter mode.
func DefaultFilter() FilterMode { return FilterAll }

// NormalizeFilter converts a raw string to a valid filter mode (or default).
func NormalizeFilter(s string) FilterMode {
	if s == "" {
		return DefaultFilter()
	}
	f := FilterMode(s)
	if IsValidFilter(f) {
		return f
	}
	return DefaultFilter()
}
