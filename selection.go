package main

// Selection is the highlighted row (Index) and the first row scrolled into
// view (Offset). After every method Offset <= Index <= Offset+visible-1 holds
// for the visible row count passed in, and Index is within the list
// (0 for an empty one).
type Selection struct {
	Index  int
	Offset int
}

// Up moves the highlight one row towards the top.
func (s *Selection) Up(n, visible int) {
	if s.Index > 0 {
		s.Index--
	}
	s.fit(n, visible)
}

// Down moves the highlight one row towards the bottom.
func (s *Selection) Down(n, visible int) {
	if s.Index < n-1 {
		s.Index++
	}
	s.fit(n, visible)
}

func (s *Selection) PageUp(n, visible int) {
	s.Index -= max(visible, 1)
	s.fit(n, visible)
}

func (s *Selection) PageDown(n, visible int) {
	s.Index += max(visible, 1)
	s.fit(n, visible)
}

func (s *Selection) Top(n, visible int) {
	s.Index = 0
	s.fit(n, visible)
}

func (s *Selection) Bottom(n, visible int) {
	s.Index = n - 1
	s.fit(n, visible)
}

// Clamp re-fits the selection after the list or the viewport changed size.
// Unlike the navigation methods it also pulls Offset back so a shrunken list
// doesn't leave empty rows below the last task.
func (s *Selection) Clamp(n, visible int) {
	s.fit(n, visible)
	visible = max(visible, 1)
	if s.Offset > n-visible {
		s.Offset = max(n-visible, 0)
	}
}

// fit scrolls the minimum needed to keep Index in view.
func (s *Selection) fit(n, visible int) {
	visible = max(visible, 1)
	if n <= 0 {
		s.Index, s.Offset = 0, 0
		return
	}
	s.Index = min(max(s.Index, 0), n-1)
	s.Offset = max(s.Offset, 0)

	if s.Index < s.Offset {
		s.Offset = s.Index
	}
	if s.Index >= s.Offset+visible {
		s.Offset = s.Index - visible + 1
	}
}
