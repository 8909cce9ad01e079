package viewstate

// Direction is the ordering applied to the active sort column.
type Direction string

const (
	DirectionNone       Direction = "none"
	DirectionAscending  Direction = "ascending"
	DirectionDescending Direction = "descending"
)

// Next returns the direction that follows d when the same column is selected again.
func (d Direction) Next() Direction {
	switch d {
	case DirectionAscending:
		return DirectionDescending
	case DirectionDescending:
		return DirectionNone
	default:
		return DirectionAscending
	}
}

// ParseDirection maps user input to a Direction. Unknown input is ascending.
func ParseDirection(s string) Direction {
	switch s {
	case "desc", "descend", "descending":
		return DirectionDescending
	case "none", "off":
		return DirectionNone
	default:
		return DirectionAscending
	}
}

// SortState holds at most one active sort column.
type SortState struct {
	ColumnKey string    `json:"column_key,omitempty"`
	Direction Direction `json:"direction"`
}

// Active reports whether the state orders the projection.
func (s SortState) Active() bool {
	return s.ColumnKey != "" && (s.Direction == DirectionAscending || s.Direction == DirectionDescending)
}

// Toggle applies a column selection: the same column cycles, a new column starts ascending.
func (s SortState) Toggle(columnKey string) SortState {
	if columnKey == "" {
		return SortState{Direction: DirectionNone}
	}
	if s.ColumnKey != columnKey {
		return SortState{ColumnKey: columnKey, Direction: DirectionAscending}
	}
	next := s.Direction.Next()
	if next == DirectionNone {
		return SortState{Direction: DirectionNone}
	}
	return SortState{ColumnKey: columnKey, Direction: next}
}
