package operation

// Type represents the type of storage operation.
type Type int

const (
	// TypeGet represents a read operation.
	TypeGet Type = iota
	// TypePut represents a write operation.
	TypePut
	// TypeDelete represents a delete operation.
	TypeDelete
)

// IsMutation reports whether operations of this type change the stored data.
func (t Type) IsMutation() bool {
	return t == TypePut || t == TypeDelete
}

func (t Type) String() string {
	switch t {
	case TypeGet:
		return "Get"
	case TypePut:
		return "Put"
	case TypeDelete:
		return "Delete"
	default:
		return "Unknown"
	}
}
