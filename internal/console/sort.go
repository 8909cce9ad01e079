package console

import "github.com/rpggio/quotedesk/internal/domain/viewstate"

// ApplySort drives v's sort toggle until columnKey is sorted in dir.
// DirectionNone clears any active sort.
func ApplySort(v View, columnKey string, dir viewstate.Direction) error {
	if dir == viewstate.DirectionNone {
		for v.Sort().Active() {
			if err := v.ToggleSort(v.Sort().ColumnKey); err != nil {
				return err
			}
		}
		return nil
	}
	for range 3 {
		s := v.Sort()
		if s.ColumnKey == columnKey && s.Direction == dir {
			return nil
		}
		if err := v.ToggleSort(columnKey); err != nil {
			return err
		}
	}
	return nil
}
