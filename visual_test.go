package actcliterm

import "testing"

// Reverse-video caret: the highlighted cell wins over the VT cursor,
// which sits at end of line.
func TestVisualCursorReverseVideo(t *testing.T) {
	term := New(WithSize(4, 80))

	term.WriteString("│ > welcome an\x1b[7mh\x1b[27mello !")

	row, col := term.VisualCursor()
	if row != 0 || col != 14 {
		t.Errorf("caret = (%d, %d), want (0, 14) at the highlighted 'h'", row, col)
	}

	// The VT cursor is elsewhere: at the end of the line.
	_, vtCol := term.CursorPos()
	if vtCol == col {
		t.Error("caret must diverge from the VT cursor here")
	}
}

func TestVisualCursorReverseRunStart(t *testing.T) {
	term := New(WithSize(4, 80))

	// A 3-cell highlight still counts; the caret is the run's first cell.
	term.WriteString("ab\x1b[7mcde\x1b[27mf")

	row, col := term.VisualCursor()
	if row != 0 || col != 2 {
		t.Errorf("caret = (%d, %d), want (0, 2)", row, col)
	}
}

func TestVisualCursorLongRunRejected(t *testing.T) {
	term := New(WithSize(4, 80), WithPromptMarkers())

	// A 10-cell reverse run is a status bar, not a caret.
	term.WriteString("\x1b[7m0123456789\x1b[27m")
	term.WriteString("\x1b[1;3H")

	row, col := term.VisualCursor()
	if row != 0 || col != 2 {
		t.Errorf("caret = (%d, %d), want VT cursor (0, 2)", row, col)
	}
}

func TestVisualCursorMultipleRunsRejected(t *testing.T) {
	term := New(WithSize(4, 80), WithPromptMarkers())

	term.WriteString("\x1b[7ma\x1b[27m gap \x1b[7mb\x1b[27m")
	term.WriteString("\x1b[1;1H")

	row, col := term.VisualCursor()
	if row != 0 || col != 0 {
		t.Errorf("caret = (%d, %d), want VT cursor (0, 0)", row, col)
	}
}

// Prompt heuristic: no highlight, so the caret lands after the last
// typed character behind the marker.
func TestVisualCursorPromptFallback(t *testing.T) {
	term := New(WithSize(4, 80))

	term.WriteString("│ > draft")
	term.WriteString("\x1b[4;1H") // park the VT cursor away

	row, col := term.VisualCursor()
	if row != 0 || col != 9 {
		t.Errorf("caret = (%d, %d), want (0, 9) after \"draft\"", row, col)
	}
}

func TestVisualCursorPromptEmptyInput(t *testing.T) {
	term := New(WithSize(4, 80))

	term.WriteString("│ > ")
	term.WriteString("\x1b[4;1H")

	row, col := term.VisualCursor()
	if row != 0 || col != 4 {
		t.Errorf("caret = (%d, %d), want (0, 4) right after the marker", row, col)
	}
}

func TestVisualCursorPromptSearchesBottomRows(t *testing.T) {
	term := New(WithSize(24, 80))

	// A marker above the search window must not match.
	term.WriteString("> old prompt\r\n")
	for i := 0; i < 20; i++ {
		term.WriteString("output\r\n")
	}
	term.WriteString("> new")

	row, col := term.VisualCursor()
	if row != 21 || col != 5 {
		t.Errorf("caret = (%d, %d), want (21, 5) at the bottom prompt", row, col)
	}
}

// VT fallback: plain output without highlight or marker.
func TestVisualCursorVTFallback(t *testing.T) {
	term := New(WithSize(3, 40))

	term.WriteString("hello")

	row, col := term.VisualCursor()
	if row != 0 || col != 5 {
		t.Errorf("caret = (%d, %d), want VT cursor (0, 5)", row, col)
	}
}

func TestVisualCursorRulesDisabled(t *testing.T) {
	term := New(WithSize(4, 80), WithVisualCursorRules(VisualRuleVT))

	term.WriteString("│ > welcome an\x1b[7mh\x1b[27mello !")

	row, col := term.VisualCursor()
	vtRow, vtCol := term.CursorPos()
	if row != vtRow || col != vtCol {
		t.Errorf("caret = (%d, %d), want VT cursor (%d, %d)", row, col, vtRow, vtCol)
	}
}

func TestVisualCursorEmptyMarkersDisablePromptRule(t *testing.T) {
	term := New(WithSize(4, 80), WithPromptMarkers())

	term.WriteString("│ > draft")

	row, col := term.VisualCursor()
	vtRow, vtCol := term.CursorPos()
	if row != vtRow || col != vtCol {
		t.Errorf("caret = (%d, %d), want VT cursor (%d, %d)", row, col, vtRow, vtCol)
	}
}

func TestVisualCursorCustomMarkers(t *testing.T) {
	term := New(WithSize(4, 80), WithPromptMarkers(">>> "))

	term.WriteString(">>> import os")
	term.WriteString("\x1b[4;1H")

	row, col := term.VisualCursor()
	if row != 0 || col != 13 {
		t.Errorf("caret = (%d, %d), want (0, 13)", row, col)
	}
}

func TestVisualCursorDeterministic(t *testing.T) {
	term := New(WithSize(4, 80))

	term.WriteString("│ > a\x1b[7mb\x1b[27mc")

	r1, c1 := term.VisualCursor()
	r2, c2 := term.VisualCursor()
	if r1 != r2 || c1 != c2 {
		t.Errorf("resolver not deterministic: (%d,%d) vs (%d,%d)", r1, c1, r2, c2)
	}
}
