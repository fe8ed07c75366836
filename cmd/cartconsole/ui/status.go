package ui

// StatusBar is one flash-message area. The message is classified by the
// explicit OK flag carried with it, not by inspecting the text; success
// renders green and failure renders red.
type StatusBar struct {
	Message string
	OK      bool
}

// Report replaces the area's content.
func (s *StatusBar) Report(message string, ok bool) {
	s.Message = message
	s.OK = ok
}

// Clear empties the area.
func (s *StatusBar) Clear() {
	s.Message = ""
	s.OK = false
}

// View renders the status line, or nothing when the area is empty.
func (s StatusBar) View(styles Styles) string {
	if s.Message == "" {
		return ""
	}
	if s.OK {
		return styles.Success.Render(s.Message)
	}
	return styles.Error.Render(s.Message)
}
