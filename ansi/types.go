package ansi

// LineClearMode selects which part of the line EL erases.
type LineClearMode int

const (
	LineClearModeRight LineClearMode = iota // cursor to end of line
	LineClearModeLeft                       // start of line to cursor
	LineClearModeAll                        // entire line
)

// ClearMode selects which part of the screen ED erases.
type ClearMode int

const (
	ClearModeBelow ClearMode = iota // cursor to end of screen
	ClearModeAbove                  // start of screen to cursor
	ClearModeAll                    // entire screen
	ClearModeSaved                  // entire screen plus scrollback
)

// TabClearMode selects which tab stops TBC removes.
type TabClearMode int

const (
	TabClearModeCurrent TabClearMode = iota
	TabClearModeAll
)

// TerminalMode identifies a settable mode (SM/RM and DECSET/DECRST).
type TerminalMode int

const (
	ModeCursorKeys            TerminalMode = iota // DEC 1
	ModeColumnMode                                // DEC 3
	ModeOrigin                                    // DEC 6
	ModeLineWrap                                  // DEC 7
	ModeBlinkingCursor                            // DEC 12
	ModeShowCursor                                // DEC 25
	ModeReportMouseClicks                         // DEC 1000
	ModeReportCellMouseMotion                     // DEC 1002
	ModeReportAllMouseMotion                      // DEC 1003
	ModeReportFocusInOut                          // DEC 1004
	ModeUTF8Mouse                                 // DEC 1005
	ModeSGRMouse                                  // DEC 1006
	ModeAlternateScroll                           // DEC 1007
	ModeSwapScreenAndSetRestoreCursor             // DEC 1049
	ModeBracketedPaste                            // DEC 2004
	ModeInsert                                    // ANSI 4
	ModeLineFeedNewLine                           // ANSI 20
)

// lookupMode maps a wire parameter to a TerminalMode.
// ok is false for modes the decoder does not know.
func lookupMode(param int, private bool) (TerminalMode, bool) {
	if private {
		switch param {
		case 1:
			return ModeCursorKeys, true
		case 3:
			return ModeColumnMode, true
		case 6:
			return ModeOrigin, true
		case 7:
			return ModeLineWrap, true
		case 12:
			return ModeBlinkingCursor, true
		case 25:
			return ModeShowCursor, true
		case 1000:
			return ModeReportMouseClicks, true
		case 1002:
			return ModeReportCellMouseMotion, true
		case 1003:
			return ModeReportAllMouseMotion, true
		case 1004:
			return ModeReportFocusInOut, true
		case 1005:
			return ModeUTF8Mouse, true
		case 1006:
			return ModeSGRMouse, true
		case 1007:
			return ModeAlternateScroll, true
		case 1049:
			return ModeSwapScreenAndSetRestoreCursor, true
		case 2004:
			return ModeBracketedPaste, true
		}
		return 0, false
	}

	switch param {
	case 4:
		return ModeInsert, true
	case 20:
		return ModeLineFeedNewLine, true
	}
	return 0, false
}

// CharsetIndex selects one of the four charset slots (G0-G3).
type CharsetIndex int

const (
	CharsetIndexG0 CharsetIndex = iota
	CharsetIndexG1
	CharsetIndexG2
	CharsetIndexG3
)

// Charset is a character encoding variant assignable to a slot.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetLineDrawing
)

// CursorStyle is the cursor shape requested by DECSCUSR.
type CursorStyle int

const (
	CursorStyleBlinkingBlock CursorStyle = iota
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
)

// CharAttrKind discriminates decoded SGR attributes.
type CharAttrKind int

const (
	AttrReset CharAttrKind = iota
	AttrBold
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlinkSlow
	AttrBlinkFast
	AttrReverse
	AttrHidden
	AttrStrike
	AttrCancelBoldDim
	AttrCancelItalic
	AttrCancelUnderline
	AttrCancelBlink
	AttrCancelReverse
	AttrCancelHidden
	AttrCancelStrike
	AttrForeground
	AttrBackground
)

// Named color values carried by CharAttribute.
const (
	NamedForeground = 256
	NamedBackground = 257
)

// RGB is a direct 24-bit color from SGR 38;2 / 48;2.
type RGB struct {
	R, G, B uint8
}

// CharAttribute is one decoded SGR attribute. For AttrForeground and
// AttrBackground exactly one of Named, Indexed, RGB carries the color;
// all nil means the default color (SGR 39/49).
type CharAttribute struct {
	Kind    CharAttrKind
	Named   *int
	Indexed *uint8
	RGB     *RGB
}

// Hyperlink is an OSC 8 link target.
type Hyperlink struct {
	ID  string
	URI string
}

// PromptMarkKind is a semantic prompt boundary from OSC 133.
type PromptMarkKind int

const (
	PromptMarkPromptStart PromptMarkKind = iota // A
	PromptMarkCommandStart                      // B
	PromptMarkOutputStart                       // C
	PromptMarkCommandDone                       // D
)

// Stats counts recoverable decode errors. The decoder never fails on
// malformed input; it repairs, skips, and counts.
type Stats struct {
	MalformedUTF8   uint64
	MalformedEscape uint64
	UnknownCSI      uint64
	UnknownMode     uint64
	UnknownEscape   uint64
}
