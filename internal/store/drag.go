package store

// BeginDrag records position as the active drag source.
// Invalid positions are ignored.
func (s *Store) BeginDrag(position int) {
	if s.valid(position) {
		s.dragSource = position
	}
}

// DragSource returns the active drag source
func (s *Store) DragSource() (int, bool) {
	return s.dragSource, s.dragSource >= 0
}

// EndDrag releases the drag source without changing the board
func (s *Store) EndDrag() {
	s.dragSource = -1
}

// DropOn swaps the drag source with target and ends the drag.
// Dropping with no active source, on the source itself, or on an invalid
// target changes nothing. A failed write keeps the drag active.
// It reports whether the board changed.
func (s *Store) DropOn(target int) (bool, error) {
	source, ok := s.DragSource()
	if !ok || source == target || !s.valid(target) {
		return false, nil
	}
	if err := s.Reorder(source, target); err != nil {
		return false, err
	}
	s.dragSource = -1
	return true, nil
}
