package enums

// SelectionPool is the legacy dual representation of inclusion status kept
// for older consumers. It is derived, never written directly.
type SelectionPool string

const (
	SelectionPoolPrimary     SelectionPool = "primary"
	SelectionPoolAlternative SelectionPool = "alternative"
)

// IsValid reports whether the value is a known SelectionPool.
func (s SelectionPool) IsValid() bool {
	return s == SelectionPoolPrimary || s == SelectionPoolAlternative
}
