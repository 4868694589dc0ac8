package compare

// Op represents the comparison operation of a Compare.
type Op int

const (
	// OpEqual represents equality comparison.
	OpEqual Op = iota
	// OpGreater represents greater than comparison.
	OpGreater
	// OpLess represents less than comparison.
	OpLess
	// OpNotEqual represents inequality comparison.
	OpNotEqual
)

func (op Op) String() string {
	switch op {
	case OpEqual:
		return "Equal"
	case OpGreater:
		return "Greater"
	case OpLess:
		return "Less"
	case OpNotEqual:
		return "NotEqual"
	default:
		return "Unknown"
	}
}
