package pokemon

// Status is the widget's display state, independent of the lookup result
type Status string

// Widget states
const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
)

// IsValid reports whether s is one of the known states
func (s Status) IsValid() bool {
	switch s {
	case StatusIdle, StatusLoading, StatusError:
		return true
	}
	return false
}

// ErrorCardPolicy decides what happens to the result card after a failed lookup
type ErrorCardPolicy string

// Error card policies
const (
	// ErrorCardHide hides the card entirely
	ErrorCardHide ErrorCardPolicy = "hide"

	// ErrorCardPlaceholder keeps the card visible with an error title and
	// the placeholder image
	ErrorCardPlaceholder ErrorCardPolicy = "placeholder"
)

// IsValid reports whether p is a known policy
func (p ErrorCardPolicy) IsValid() bool {
	return p == ErrorCardHide || p == ErrorCardPlaceholder
}
