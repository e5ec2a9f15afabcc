package actcliterm

import (
	"fmt"
	"image/color"

	"github.com/llm-case-studies/go-actcli-term/ansi"
)

// clampCol pulls the cursor column back onto the grid and clears any
// pending wrap. Called by every operation that repositions the cursor.
func (t *Terminal) clampCol() {
	if t.cursor.Col >= t.cols {
		t.cursor.Col = t.cols - 1
	}
	t.cursor.PendingWrap = false
}

// writeCol is the column erase and write operations act on: the cursor
// column, pulled back from the pending-wrap position.
func (t *Terminal) writeCol() int {
	if t.cursor.Col >= t.cols {
		return t.cols - 1
	}
	return t.cursor.Col
}

// Input writes a printable rune at the cursor position.
// Handles pending wrap, wide characters, insert mode, and charset
// translation.
func (t *Terminal) Input(r rune) {
	if t.activeCharset >= 0 && t.activeCharset < 4 && t.charsets[t.activeCharset] == CharsetLineDrawing {
		r = translateLineDrawing(r)
	}

	width := runeWidth(r)
	if width <= 0 {
		// Combining marks are not composed onto the previous cell.
		return
	}

	if t.cursor.Col+width > t.cols {
		if t.modes&ModeLineWrap != 0 {
			// The deferred wrap: CR+LF before placing the glyph.
			t.activeBuffer.SetWrapped(t.cursor.Row, true)
			t.cursor.Col = 0
			t.cursor.Row++
			t.cursor.PendingWrap = false
			t.scrollIfNeeded()
		} else {
			if width > t.cols {
				return
			}
			// Autowrap off: keep overwriting the last column.
			t.cursor.Col = t.cols - width
			t.cursor.PendingWrap = false
		}
	}

	if t.modes&ModeInsert != 0 {
		t.activeBuffer.InsertBlanks(t.cursor.Row, t.cursor.Col, width, t.blankCell())
	}

	if t.cursor.Row < 0 || t.cursor.Row >= t.rows || t.cursor.Col < 0 {
		return
	}

	cell := t.activeBuffer.Cell(t.cursor.Row, t.cursor.Col)
	if cell != nil {
		cell.Char = r
		cell.Fg = t.template.Fg
		cell.Bg = t.template.Bg
		cell.Flags = t.template.Flags &^ (CellFlagWideChar | CellFlagWideCharSpacer)
		cell.Hyperlink = t.currentHyperlink
		if width == 2 {
			cell.SetFlag(CellFlagWideChar)
		}
		t.activeBuffer.MarkDirty(t.cursor.Row, t.cursor.Col)
	}

	t.cursor.Col++

	// Continuation cell for a wide character: empty grapheme, leader's
	// attributes.
	if width == 2 && t.cursor.Col < t.cols {
		spacer := t.activeBuffer.Cell(t.cursor.Row, t.cursor.Col)
		if spacer != nil {
			spacer.Char = 0
			spacer.Fg = t.template.Fg
			spacer.Bg = t.template.Bg
			spacer.Flags = t.template.Flags &^ CellFlagWideChar
			spacer.SetFlag(CellFlagWideCharSpacer)
			spacer.Hyperlink = t.currentHyperlink
			t.activeBuffer.MarkDirty(t.cursor.Row, t.cursor.Col)
		}
		t.cursor.Col++
	}

	if t.cursor.Col >= t.cols {
		if t.modes&ModeLineWrap != 0 {
			t.cursor.Col = t.cols
			t.cursor.PendingWrap = true
		} else {
			t.cursor.Col = t.cols - 1
		}
	}
	t.touch()
}

// translateLineDrawing maps ASCII to the DEC special graphics set.
func translateLineDrawing(r rune) rune {
	switch r {
	case 'j':
		return '┘'
	case 'k':
		return '┐'
	case 'l':
		return '┌'
	case 'm':
		return '└'
	case 'n':
		return '┼'
	case 'q':
		return '─'
	case 't':
		return '├'
	case 'u':
		return '┤'
	case 'v':
		return '┴'
	case 'w':
		return '┬'
	case 'x':
		return '│'
	default:
		return r
	}
}

// Bell triggers the bell provider.
func (t *Terminal) Bell() {
	t.bellProvider.Ring()
}

// Backspace moves the cursor one column left, stopping at column 0.
func (t *Terminal) Backspace() {
	t.clampCol()
	if t.cursor.Col > 0 {
		t.cursor.Col--
	}
	t.touch()
}

// CarriageReturn moves the cursor to column 0 of the current row.
func (t *Terminal) CarriageReturn() {
	t.cursor.Col = 0
	t.cursor.PendingWrap = false
	t.touch()
}

// LineFeed moves the cursor down one row, scrolling the region when the
// cursor sits on its bottom line. If ModeLineFeedNewLine is set, also
// moves to column 0.
func (t *Terminal) LineFeed() {
	t.clampCol()
	t.activeBuffer.SetWrapped(t.cursor.Row, false)

	if t.modes&ModeLineFeedNewLine != 0 {
		t.cursor.Col = 0
	}

	t.cursor.Row++
	t.scrollIfNeeded()
	t.touch()
}

// Tab advances the cursor to the next n tab stops.
func (t *Terminal) Tab(n int) {
	t.clampCol()
	for i := 0; i < n; i++ {
		t.cursor.Col = t.activeBuffer.NextTabStop(t.cursor.Col)
	}
	t.touch()
}

// Substitute replaces the character at the cursor with '?' (SUB).
func (t *Terminal) Substitute() {
	cell := t.activeBuffer.Cell(t.cursor.Row, t.writeCol())
	if cell != nil {
		cell.Char = '?'
		t.activeBuffer.MarkDirty(t.cursor.Row, t.writeCol())
	}
	t.touch()
}

// ClearLine erases part of the current line. The cursor does not move;
// cleared cells take the current background (BCE).
func (t *Terminal) ClearLine(mode ansi.LineClearMode) {
	col := t.writeCol()
	switch mode {
	case ansi.LineClearModeRight:
		t.activeBuffer.ClearRowRange(t.cursor.Row, col, t.cols, t.blankCell())
	case ansi.LineClearModeLeft:
		t.activeBuffer.ClearRowRange(t.cursor.Row, 0, col+1, t.blankCell())
	case ansi.LineClearModeAll:
		t.activeBuffer.ClearRow(t.cursor.Row, t.blankCell())
	}
	t.touch()
}

// ClearScreen erases part of the screen. The cursor does not move.
// ClearModeSaved additionally discards scrollback.
func (t *Terminal) ClearScreen(mode ansi.ClearMode) {
	blank := t.blankCell()
	col := t.writeCol()

	switch mode {
	case ansi.ClearModeBelow:
		t.activeBuffer.ClearRowRange(t.cursor.Row, col, t.cols, blank)
		for row := t.cursor.Row + 1; row < t.rows; row++ {
			t.activeBuffer.ClearRow(row, blank)
		}
	case ansi.ClearModeAbove:
		for row := 0; row < t.cursor.Row; row++ {
			t.activeBuffer.ClearRow(row, blank)
		}
		t.activeBuffer.ClearRowRange(t.cursor.Row, 0, col+1, blank)
	case ansi.ClearModeAll:
		t.activeBuffer.ClearAll(blank)
	case ansi.ClearModeSaved:
		t.activeBuffer.ClearAll(blank)
		t.activeBuffer.ClearScrollback()
	}
	t.touch()
}

// ClearTabs removes tab stops at the current column or all columns.
func (t *Terminal) ClearTabs(mode ansi.TabClearMode) {
	switch mode {
	case ansi.TabClearModeCurrent:
		t.activeBuffer.ClearTabStop(t.writeCol())
	case ansi.TabClearModeAll:
		t.activeBuffer.ClearAllTabStops()
	}
	t.touch()
}

// HorizontalTabSet enables a tab stop at the current column.
func (t *Terminal) HorizontalTabSet() {
	t.activeBuffer.SetTabStop(t.writeCol())
	t.touch()
}

// Goto moves the cursor to (row, col), biased and clamped by origin mode.
func (t *Terminal) Goto(row, col int) {
	row = t.effectiveRow(row)
	t.cursor.Row = clamp(row, t.originTop(), t.originBottom()-1)
	t.cursor.Col = clamp(col, 0, t.cols-1)
	t.cursor.PendingWrap = false
	t.touch()
}

// GotoCol moves the cursor to the specified column, keeping the row.
func (t *Terminal) GotoCol(col int) {
	t.cursor.Col = clamp(col, 0, t.cols-1)
	t.cursor.PendingWrap = false
	t.touch()
}

// GotoLine moves the cursor to the specified row, keeping the column.
func (t *Terminal) GotoLine(row int) {
	row = t.effectiveRow(row)
	t.cursor.Row = clamp(row, t.originTop(), t.originBottom()-1)
	t.cursor.PendingWrap = false
	t.touch()
}

// MoveUp moves the cursor up n rows.
func (t *Terminal) MoveUp(n int) {
	t.clampCol()
	t.cursor.Row = clamp(t.cursor.Row-n, t.originTop(), t.originBottom()-1)
	t.touch()
}

// MoveDown moves the cursor down n rows.
func (t *Terminal) MoveDown(n int) {
	t.clampCol()
	t.cursor.Row = clamp(t.cursor.Row+n, t.originTop(), t.originBottom()-1)
	t.touch()
}

// MoveForward moves the cursor right n columns, stopping at the last
// column.
func (t *Terminal) MoveForward(n int) {
	t.clampCol()
	t.cursor.Col = clamp(t.cursor.Col+n, 0, t.cols-1)
	t.touch()
}

// MoveBackward moves the cursor left n columns, stopping at column 0.
func (t *Terminal) MoveBackward(n int) {
	t.clampCol()
	t.cursor.Col = clamp(t.cursor.Col-n, 0, t.cols-1)
	t.touch()
}

// MoveDownCr moves the cursor down n rows and to column 0.
func (t *Terminal) MoveDownCr(n int) {
	t.cursor.Row = clamp(t.cursor.Row+n, t.originTop(), t.originBottom()-1)
	t.cursor.Col = 0
	t.cursor.PendingWrap = false
	t.touch()
}

// MoveUpCr moves the cursor up n rows and to column 0.
func (t *Terminal) MoveUpCr(n int) {
	t.cursor.Row = clamp(t.cursor.Row-n, t.originTop(), t.originBottom()-1)
	t.cursor.Col = 0
	t.cursor.PendingWrap = false
	t.touch()
}

// MoveForwardTabs advances the cursor n tab stops.
func (t *Terminal) MoveForwardTabs(n int) {
	t.Tab(n)
}

// MoveBackwardTabs moves the cursor back n tab stops.
func (t *Terminal) MoveBackwardTabs(n int) {
	t.clampCol()
	for i := 0; i < n; i++ {
		t.cursor.Col = t.activeBuffer.PrevTabStop(t.cursor.Col)
	}
	t.touch()
}

// InsertBlank inserts n blank cells at the cursor, shifting the rest of
// the line right.
func (t *Terminal) InsertBlank(n int) {
	t.activeBuffer.InsertBlanks(t.cursor.Row, t.writeCol(), n, t.blankCell())
	t.touch()
}

// InsertBlankLines inserts n blank lines at the cursor within the scroll
// region. No-op when the cursor is outside the region.
func (t *Terminal) InsertBlankLines(n int) {
	if t.cursor.Row >= t.scrollTop && t.cursor.Row < t.scrollBottom {
		t.activeBuffer.InsertLines(t.cursor.Row, n, t.scrollBottom, t.blankCell())
	}
	t.touch()
}

// DeleteChars removes n cells at the cursor, shifting the rest of the
// line left.
func (t *Terminal) DeleteChars(n int) {
	t.activeBuffer.DeleteChars(t.cursor.Row, t.writeCol(), n, t.blankCell())
	t.touch()
}

// DeleteLines removes n lines at the cursor within the scroll region.
// No-op when the cursor is outside the region.
func (t *Terminal) DeleteLines(n int) {
	if t.cursor.Row >= t.scrollTop && t.cursor.Row < t.scrollBottom {
		t.activeBuffer.DeleteLines(t.cursor.Row, n, t.scrollBottom, t.blankCell())
	}
	t.touch()
}

// EraseChars blanks n cells at the cursor without shifting.
func (t *Terminal) EraseChars(n int) {
	col := t.writeCol()
	if n > t.cols-col {
		n = t.cols - col
	}
	t.activeBuffer.ClearRowRange(t.cursor.Row, col, col+n, t.blankCell())
	t.touch()
}

// ScrollUp shifts the scroll region up n lines. Displaced lines enter
// scrollback only when the region covers the full primary screen.
func (t *Terminal) ScrollUp(n int) {
	t.activeBuffer.ScrollUp(t.scrollTop, t.scrollBottom, n, t.blankCell())
	t.touch()
}

// ScrollDown shifts the scroll region down n lines.
func (t *Terminal) ScrollDown(n int) {
	t.activeBuffer.ScrollDown(t.scrollTop, t.scrollBottom, n, t.blankCell())
	t.touch()
}

// SetScrollingRegion sets the scroll margins (1-based inclusive on the
// wire; bottom 0 means the last row) and homes the cursor, honoring
// origin mode. Invalid regions are ignored.
func (t *Terminal) SetScrollingRegion(top, bottom int) {
	if bottom <= 0 || bottom > t.rows {
		bottom = t.rows
	}
	if top < 1 {
		top = 1
	}
	if top >= bottom {
		return
	}

	t.scrollTop = top - 1
	t.scrollBottom = bottom

	if t.modes&ModeOrigin != 0 {
		t.cursor.Row = t.scrollTop
	} else {
		t.cursor.Row = 0
	}
	t.cursor.Col = 0
	t.cursor.PendingWrap = false
	t.touch()
}

// SaveCursorPosition saves cursor position, attributes, charset state,
// origin mode, and pending wrap (DECSC).
func (t *Terminal) SaveCursorPosition() {
	t.savedCursor = &SavedCursor{
		Row:          t.cursor.Row,
		Col:          t.cursor.Col,
		PendingWrap:  t.cursor.PendingWrap,
		Attrs:        t.template,
		OriginMode:   t.modes&ModeOrigin != 0,
		CharsetIndex: t.activeCharset,
		Charsets:     t.charsets,
	}
}

// RestoreCursorPosition restores the state saved by DECSC. Without a
// prior save this is a no-op.
func (t *Terminal) RestoreCursorPosition() {
	if t.savedCursor == nil {
		return
	}

	t.cursor.Row = clamp(t.savedCursor.Row, 0, t.rows-1)
	t.cursor.Col = t.savedCursor.Col
	if t.cursor.Col > t.cols {
		t.cursor.Col = t.cols
	}
	t.cursor.PendingWrap = t.savedCursor.PendingWrap && t.cursor.Col >= t.cols
	if !t.cursor.PendingWrap && t.cursor.Col >= t.cols {
		t.cursor.Col = t.cols - 1
	}
	t.template = t.savedCursor.Attrs

	if t.savedCursor.OriginMode {
		t.modes |= ModeOrigin
	} else {
		t.modes &^= ModeOrigin
	}

	t.activeCharset = t.savedCursor.CharsetIndex
	t.charsets = t.savedCursor.Charsets
	t.touch()
}

// SetMode enables a terminal mode flag.
func (t *Terminal) SetMode(mode ansi.TerminalMode) {
	t.setMode(mode, true)
}

// UnsetMode disables a terminal mode flag.
func (t *Terminal) UnsetMode(mode ansi.TerminalMode) {
	t.setMode(mode, false)
}

// setMode applies one mode change with its side effects.
func (t *Terminal) setMode(mode ansi.TerminalMode, set bool) {
	var m TerminalMode

	switch mode {
	case ansi.ModeCursorKeys:
		m = ModeCursorKeys
	case ansi.ModeColumnMode:
		m = ModeColumnMode
	case ansi.ModeInsert:
		m = ModeInsert
	case ansi.ModeOrigin:
		m = ModeOrigin
		if set {
			t.cursor.Row = t.scrollTop
			t.cursor.Col = 0
			t.cursor.PendingWrap = false
		}
	case ansi.ModeLineWrap:
		m = ModeLineWrap
	case ansi.ModeBlinkingCursor:
		m = ModeBlinkingCursor
	case ansi.ModeLineFeedNewLine:
		m = ModeLineFeedNewLine
	case ansi.ModeShowCursor:
		m = ModeShowCursor
		t.cursor.Visible = set
	case ansi.ModeReportMouseClicks:
		m = ModeReportMouseClicks
	case ansi.ModeReportCellMouseMotion:
		m = ModeReportCellMouseMotion
	case ansi.ModeReportAllMouseMotion:
		m = ModeReportAllMouseMotion
	case ansi.ModeReportFocusInOut:
		m = ModeReportFocusInOut
	case ansi.ModeUTF8Mouse:
		m = ModeUTF8Mouse
	case ansi.ModeSGRMouse:
		m = ModeSGRMouse
	case ansi.ModeAlternateScroll:
		m = ModeAlternateScroll
	case ansi.ModeSwapScreenAndSetRestoreCursor:
		m = ModeSwapScreenAndSetRestoreCursor
		if set {
			if t.activeBuffer != t.alternateBuffer {
				t.SaveCursorPosition()
				t.activeBuffer = t.alternateBuffer
				t.activeBuffer.ClearAll(NewCell())
			}
		} else {
			if t.activeBuffer != t.primaryBuffer {
				t.activeBuffer = t.primaryBuffer
				t.RestoreCursorPosition()
			}
		}
	case ansi.ModeBracketedPaste:
		m = ModeBracketedPaste
	default:
		return
	}

	if set {
		t.modes |= m
	} else {
		t.modes &^= m
	}
	t.touch()
}

// SetKeypadApplicationMode enables application keypad mode.
func (t *Terminal) SetKeypadApplicationMode() {
	t.modes |= ModeKeypadApplication
	t.touch()
}

// UnsetKeypadApplicationMode disables application keypad mode.
func (t *Terminal) UnsetKeypadApplicationMode() {
	t.modes &^= ModeKeypadApplication
	t.touch()
}

// SetActiveCharset selects which charset slot (G0-G3) is active.
func (t *Terminal) SetActiveCharset(n int) {
	if n >= 0 && n < 4 {
		t.activeCharset = n
	}
	t.touch()
}

// ConfigureCharset assigns a charset to one of the four slots.
func (t *Terminal) ConfigureCharset(index ansi.CharsetIndex, charset ansi.Charset) {
	idx := int(index)
	if idx < 0 || idx > 3 {
		return
	}

	switch charset {
	case ansi.CharsetLineDrawing:
		t.charsets[idx] = CharsetLineDrawing
	default:
		t.charsets[idx] = CharsetASCII
	}
	t.touch()
}

// SetTerminalCharAttribute applies one SGR attribute to the cell
// template used for subsequently written characters.
func (t *Terminal) SetTerminalCharAttribute(attr ansi.CharAttribute) {
	switch attr.Kind {
	case ansi.AttrReset:
		t.template = NewCellTemplate()
	case ansi.AttrBold:
		t.template.SetFlag(CellFlagBold)
	case ansi.AttrDim:
		t.template.SetFlag(CellFlagDim)
	case ansi.AttrItalic:
		t.template.SetFlag(CellFlagItalic)
	case ansi.AttrUnderline:
		t.template.SetFlag(CellFlagUnderline)
	case ansi.AttrBlinkSlow:
		t.template.SetFlag(CellFlagBlinkSlow)
	case ansi.AttrBlinkFast:
		t.template.SetFlag(CellFlagBlinkFast)
	case ansi.AttrReverse:
		t.template.SetFlag(CellFlagReverse)
	case ansi.AttrHidden:
		t.template.SetFlag(CellFlagHidden)
	case ansi.AttrStrike:
		t.template.SetFlag(CellFlagStrike)
	case ansi.AttrCancelBoldDim:
		t.template.ClearFlag(CellFlagBold | CellFlagDim)
	case ansi.AttrCancelItalic:
		t.template.ClearFlag(CellFlagItalic)
	case ansi.AttrCancelUnderline:
		t.template.ClearFlag(CellFlagUnderline)
	case ansi.AttrCancelBlink:
		t.template.ClearFlag(CellFlagBlinkSlow | CellFlagBlinkFast)
	case ansi.AttrCancelReverse:
		t.template.ClearFlag(CellFlagReverse)
	case ansi.AttrCancelHidden:
		t.template.ClearFlag(CellFlagHidden)
	case ansi.AttrCancelStrike:
		t.template.ClearFlag(CellFlagStrike)
	case ansi.AttrForeground:
		t.template.Fg = resolveAttrColor(attr, true)
	case ansi.AttrBackground:
		t.template.Bg = resolveAttrColor(attr, false)
	}
	t.touch()
}

// resolveAttrColor converts a decoded SGR color into the cell color
// model.
func resolveAttrColor(attr ansi.CharAttribute, fg bool) color.Color {
	switch {
	case attr.RGB != nil:
		return color.RGBA{R: attr.RGB.R, G: attr.RGB.G, B: attr.RGB.B, A: 255}
	case attr.Indexed != nil:
		return &IndexedColor{Index: int(*attr.Indexed)}
	case attr.Named != nil:
		name := *attr.Named
		switch name {
		case ansi.NamedForeground:
			return &NamedColor{Name: NamedColorForeground}
		case ansi.NamedBackground:
			return &NamedColor{Name: NamedColorBackground}
		default:
			return &IndexedColor{Index: name}
		}
	case fg:
		return &NamedColor{Name: NamedColorForeground}
	default:
		return &NamedColor{Name: NamedColorBackground}
	}
}

// SetCursorStyle changes the cursor rendering style.
func (t *Terminal) SetCursorStyle(style ansi.CursorStyle) {
	t.cursor.Style = CursorStyle(style)
	t.touch()
}

// DeviceStatus answers a device status report query. Parameter 5 reports
// ready; parameter 6 reports the cursor position, 1-indexed and relative
// to the scroll region in origin mode.
func (t *Terminal) DeviceStatus(n int) {
	switch n {
	case 5:
		t.writeResponseString("\x1b[0n")
	case 6:
		row := t.cursor.Row - t.originTop() + 1
		col := t.writeCol() + 1
		t.writeResponseString(fmt.Sprintf("\x1b[%d;%dR", row, col))
	}
}

// IdentifyTerminal answers a device attributes query. The primary
// response is configurable via WithDAPrimary; the secondary response is
// a fixed VT-class identifier.
func (t *Terminal) IdentifyTerminal(b byte) {
	switch b {
	case '>':
		t.writeResponseString("\x1b[>1;10;0c")
	default:
		t.writeResponse(t.daPrimary)
	}
}

// SetTitle updates the window title and notifies the title provider.
func (t *Terminal) SetTitle(title string) {
	t.title = title
	t.titleProvider.SetTitle(title)
	t.touch()
}

// PushTitle saves the current title to the stack.
func (t *Terminal) PushTitle() {
	t.titleStack = append(t.titleStack, t.title)
	t.titleProvider.PushTitle()
}

// PopTitle restores the previous title from the stack.
func (t *Terminal) PopTitle() {
	if len(t.titleStack) > 0 {
		t.title = t.titleStack[len(t.titleStack)-1]
		t.titleStack = t.titleStack[:len(t.titleStack)-1]
		t.touch()
	}
	t.titleProvider.PopTitle()
}

// SetHyperlink sets the active hyperlink for subsequently written
// characters. nil closes the link region.
func (t *Terminal) SetHyperlink(h *ansi.Hyperlink) {
	if h == nil {
		t.currentHyperlink = nil
		return
	}
	t.currentHyperlink = &Hyperlink{ID: h.ID, URI: h.URI}
}

// SetWorkingDirectory records the working directory advertised via OSC 7.
func (t *Terminal) SetWorkingDirectory(uri string) {
	t.workingDir = uri
}

// Decaln fills the screen with 'E' (DEC screen alignment test).
func (t *Terminal) Decaln() {
	t.activeBuffer.FillWithE()
	t.touch()
}

// ReverseIndex moves the cursor up one row; at the top of the scroll
// region it scrolls the region down instead.
func (t *Terminal) ReverseIndex() {
	t.clampCol()
	if t.cursor.Row == t.scrollTop {
		t.activeBuffer.ScrollDown(t.scrollTop, t.scrollBottom, 1, t.blankCell())
	} else if t.cursor.Row > 0 {
		t.cursor.Row--
	}
	t.touch()
}

// ResetState clears the screen and restores power-on state (RIS).
// Scrollback is preserved.
func (t *Terminal) ResetState() {
	t.activeBuffer = t.primaryBuffer
	t.activeBuffer.ClearAll(NewCell())

	t.cursor = NewCursor()
	t.savedCursor = nil
	t.template = NewCellTemplate()

	t.scrollTop = 0
	t.scrollBottom = t.rows

	t.modes = ModeShowCursor
	if t.autowrapDefault {
		t.modes |= ModeLineWrap
	}

	t.charsets = [4]Charset{CharsetASCII, CharsetASCII, CharsetASCII, CharsetASCII}
	t.activeCharset = 0
	t.currentHyperlink = nil
	t.promptMarks = nil
	t.touch()
}
