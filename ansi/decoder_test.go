package ansi

import (
	"fmt"
	"reflect"
	"testing"
)

// recorder captures every handler call as a formatted string so tests
// can compare dispatch traces.
type recorder struct {
	calls []string
}

func (r *recorder) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

func (r *recorder) Input(ru rune)             { r.log("input %q", ru) }
func (r *recorder) Bell()                     { r.log("bell") }
func (r *recorder) Backspace()                { r.log("backspace") }
func (r *recorder) CarriageReturn()           { r.log("cr") }
func (r *recorder) LineFeed()                 { r.log("lf") }
func (r *recorder) Tab(n int)                 { r.log("tab %d", n) }
func (r *recorder) Substitute()               { r.log("sub") }
func (r *recorder) ClearLine(m LineClearMode) { r.log("el %d", m) }
func (r *recorder) ClearScreen(m ClearMode)   { r.log("ed %d", m) }
func (r *recorder) ClearTabs(m TabClearMode)  { r.log("tbc %d", m) }
func (r *recorder) HorizontalTabSet()         { r.log("hts") }
func (r *recorder) Goto(row, col int)         { r.log("goto %d %d", row, col) }
func (r *recorder) GotoCol(col int)           { r.log("gotocol %d", col) }
func (r *recorder) GotoLine(row int)          { r.log("gotoline %d", row) }
func (r *recorder) MoveUp(n int)              { r.log("up %d", n) }
func (r *recorder) MoveDown(n int)            { r.log("down %d", n) }
func (r *recorder) MoveForward(n int)         { r.log("fwd %d", n) }
func (r *recorder) MoveBackward(n int)        { r.log("back %d", n) }
func (r *recorder) MoveDownCr(n int)          { r.log("downcr %d", n) }
func (r *recorder) MoveUpCr(n int)            { r.log("upcr %d", n) }
func (r *recorder) MoveForwardTabs(n int)     { r.log("fwdtabs %d", n) }
func (r *recorder) MoveBackwardTabs(n int)    { r.log("backtabs %d", n) }
func (r *recorder) InsertBlank(n int)         { r.log("ich %d", n) }
func (r *recorder) InsertBlankLines(n int)    { r.log("il %d", n) }
func (r *recorder) DeleteChars(n int)         { r.log("dch %d", n) }
func (r *recorder) DeleteLines(n int)         { r.log("dl %d", n) }
func (r *recorder) EraseChars(n int)          { r.log("ech %d", n) }
func (r *recorder) ScrollUp(n int)            { r.log("su %d", n) }
func (r *recorder) ScrollDown(n int)          { r.log("sd %d", n) }
func (r *recorder) SetScrollingRegion(t, b int) {
	r.log("stbm %d %d", t, b)
}
func (r *recorder) SaveCursorPosition()          { r.log("decsc") }
func (r *recorder) RestoreCursorPosition()       { r.log("decrc") }
func (r *recorder) SetMode(m TerminalMode)       { r.log("sm %d", m) }
func (r *recorder) UnsetMode(m TerminalMode)     { r.log("rm %d", m) }
func (r *recorder) SetKeypadApplicationMode()    { r.log("deckpam") }
func (r *recorder) UnsetKeypadApplicationMode()  { r.log("deckpnm") }
func (r *recorder) SetActiveCharset(n int)       { r.log("charset %d", n) }
func (r *recorder) ConfigureCharset(i CharsetIndex, c Charset) {
	r.log("configcharset %d %d", i, c)
}
func (r *recorder) SetTerminalCharAttribute(a CharAttribute) {
	switch {
	case a.Named != nil:
		r.log("sgr %d named %d", a.Kind, *a.Named)
	case a.Indexed != nil:
		r.log("sgr %d indexed %d", a.Kind, *a.Indexed)
	case a.RGB != nil:
		r.log("sgr %d rgb %d %d %d", a.Kind, a.RGB.R, a.RGB.G, a.RGB.B)
	default:
		r.log("sgr %d", a.Kind)
	}
}
func (r *recorder) SetCursorStyle(s CursorStyle) { r.log("cursorstyle %d", s) }
func (r *recorder) DeviceStatus(n int)           { r.log("dsr %d", n) }
func (r *recorder) IdentifyTerminal(b byte)      { r.log("da %d", b) }
func (r *recorder) SetTitle(title string)        { r.log("title %q", title) }
func (r *recorder) PushTitle()                   { r.log("pushtitle") }
func (r *recorder) PopTitle()                    { r.log("poptitle") }
func (r *recorder) SetHyperlink(h *Hyperlink) {
	if h == nil {
		r.log("hyperlink nil")
		return
	}
	r.log("hyperlink %q %q", h.ID, h.URI)
}
func (r *recorder) SetWorkingDirectory(uri string) { r.log("cwd %q", uri) }
func (r *recorder) PromptMark(k PromptMarkKind, exit int) {
	r.log("promptmark %d %d", k, exit)
}
func (r *recorder) Decaln()       { r.log("decaln") }
func (r *recorder) ReverseIndex() { r.log("ri") }
func (r *recorder) ResetState()   { r.log("ris") }

var _ Handler = (*recorder)(nil)

func decode(t *testing.T, input string) *recorder {
	t.Helper()
	rec := &recorder{}
	d := NewDecoder(rec)
	if _, err := d.Write([]byte(input)); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	return rec
}

func TestDecoderPrintable(t *testing.T) {
	rec := decode(t, "Hi")
	want := []string{`input 'H'`, `input 'i'`}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderC0Controls(t *testing.T) {
	rec := decode(t, "a\b\t\n\v\f\r\x07")
	want := []string{
		`input 'a'`, "backspace", "tab 1", "lf", "lf", "lf", "cr", "bell",
	}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderNULAndDELDropped(t *testing.T) {
	rec := decode(t, "a\x00b\x7fc")
	want := []string{`input 'a'`, `input 'b'`, `input 'c'`}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderCUPDefaults(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"\x1b[H", "goto 0 0"},
		{"\x1b[5;10H", "goto 4 9"},
		{"\x1b[;10H", "goto 0 9"},
		{"\x1b[5;10f", "goto 4 9"},
	}
	for _, tc := range tests {
		rec := decode(t, tc.input)
		if len(rec.calls) != 1 || rec.calls[0] != tc.want {
			t.Errorf("%q: calls = %v, want [%s]", tc.input, rec.calls, tc.want)
		}
	}
}

func TestDecoderCursorMovementDefaults(t *testing.T) {
	rec := decode(t, "\x1b[A\x1b[3B\x1b[0C\x1b[2D")
	want := []string{"up 1", "down 3", "fwd 1", "back 2"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderEraseModes(t *testing.T) {
	rec := decode(t, "\x1b[J\x1b[1J\x1b[2J\x1b[3J\x1b[K\x1b[1K\x1b[2K")
	want := []string{"ed 0", "ed 1", "ed 2", "ed 3", "el 0", "el 1", "el 2"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderSGRBasic(t *testing.T) {
	rec := decode(t, "\x1b[1;7;31m")
	want := []string{
		fmt.Sprintf("sgr %d", AttrBold),
		fmt.Sprintf("sgr %d", AttrReverse),
		fmt.Sprintf("sgr %d named 1", AttrForeground),
	}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderSGREmptyIsReset(t *testing.T) {
	rec := decode(t, "\x1b[m")
	want := []string{fmt.Sprintf("sgr %d", AttrReset)}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderSGRExtendedColors(t *testing.T) {
	rec := decode(t, "\x1b[38;5;196m\x1b[48;2;10;20;30m")
	want := []string{
		fmt.Sprintf("sgr %d indexed 196", AttrForeground),
		fmt.Sprintf("sgr %d rgb 10 20 30", AttrBackground),
	}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderSGRColonSeparators(t *testing.T) {
	rec := decode(t, "\x1b[38:5:99m")
	want := []string{fmt.Sprintf("sgr %d indexed 99", AttrForeground)}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderPrivateModes(t *testing.T) {
	rec := decode(t, "\x1b[?25l\x1b[?1049h\x1b[?2004h\x1b[4h")
	want := []string{
		fmt.Sprintf("rm %d", ModeShowCursor),
		fmt.Sprintf("sm %d", ModeSwapScreenAndSetRestoreCursor),
		fmt.Sprintf("sm %d", ModeBracketedPaste),
		fmt.Sprintf("sm %d", ModeInsert),
	}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderUnknownModeCounted(t *testing.T) {
	rec := &recorder{}
	d := NewDecoder(rec)
	d.Write([]byte("\x1b[?99999h"))

	if len(rec.calls) != 0 {
		t.Errorf("unexpected calls: %v", rec.calls)
	}
	if d.Stats().UnknownMode != 1 {
		t.Errorf("UnknownMode = %d, want 1", d.Stats().UnknownMode)
	}
}

func TestDecoderUnknownCSICounted(t *testing.T) {
	rec := &recorder{}
	d := NewDecoder(rec)
	d.Write([]byte("\x1b[5y"))

	if len(rec.calls) != 0 {
		t.Errorf("unexpected calls: %v", rec.calls)
	}
	if d.Stats().UnknownCSI != 1 {
		t.Errorf("UnknownCSI = %d, want 1", d.Stats().UnknownCSI)
	}
}

func TestDecoderDSRAndDA(t *testing.T) {
	rec := decode(t, "\x1b[6n\x1b[5n\x1b[c\x1b[>c\x1bZ")
	want := []string{"dsr 6", "dsr 5", "da 0", "da 62", "da 0"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderEscSequences(t *testing.T) {
	rec := decode(t, "\x1b7\x1b8\x1bD\x1bE\x1bH\x1bM\x1b=\x1b>\x1bc")
	want := []string{
		"decsc", "decrc", "lf", "cr", "lf", "hts", "ri",
		"deckpam", "deckpnm", "ris",
	}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderCharsetSelection(t *testing.T) {
	rec := decode(t, "\x1b(0\x1b(B\x1b)0")
	want := []string{
		fmt.Sprintf("configcharset %d %d", CharsetIndexG0, CharsetLineDrawing),
		fmt.Sprintf("configcharset %d %d", CharsetIndexG0, CharsetASCII),
		fmt.Sprintf("configcharset %d %d", CharsetIndexG1, CharsetLineDrawing),
	}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderDecaln(t *testing.T) {
	rec := decode(t, "\x1b#8")
	want := []string{"decaln"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderOSCTitleBEL(t *testing.T) {
	rec := decode(t, "\x1b]0;hello title\x07")
	want := []string{`title "hello title"`}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderOSCTitleST(t *testing.T) {
	rec := decode(t, "\x1b]2;st title\x1b\\")
	want := []string{`title "st title"`}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderOSCUnknownIgnored(t *testing.T) {
	rec := decode(t, "\x1b]52;c;aGVsbG8=\x07after")
	want := []string{`input 'a'`, `input 'f'`, `input 't'`, `input 'e'`, `input 'r'`}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderOSCHyperlink(t *testing.T) {
	rec := decode(t, "\x1b]8;id=x;https://example.com\x07\x1b]8;;\x07")
	want := []string{`hyperlink "x" "https://example.com"`, "hyperlink nil"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderOSCPromptMark(t *testing.T) {
	rec := decode(t, "\x1b]133;A\x07\x1b]133;D;0\x07")
	want := []string{
		fmt.Sprintf("promptmark %d -1", PromptMarkPromptStart),
		fmt.Sprintf("promptmark %d 0", PromptMarkCommandDone),
	}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderDCSIgnored(t *testing.T) {
	rec := decode(t, "\x1bPsome payload\x1b\\ok")
	want := []string{`input 'o'`, `input 'k'`}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderSOSPMAPCIgnored(t *testing.T) {
	for _, intro := range []string{"\x1bX", "\x1b^", "\x1b_"} {
		rec := decode(t, intro+"payload\x1b\\Z")
		want := []string{`input 'Z'`}
		if !reflect.DeepEqual(rec.calls, want) {
			t.Errorf("%q: calls = %v, want %v", intro, rec.calls, want)
		}
	}
}

func TestDecoderMalformedUTF8(t *testing.T) {
	rec := &recorder{}
	d := NewDecoder(rec)
	d.Write([]byte{0x41, 0xFF, 0x42})

	want := []string{`input 'A'`, `input '�'`, `input 'B'`}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
	if d.Stats().MalformedUTF8 != 1 {
		t.Errorf("MalformedUTF8 = %d, want 1", d.Stats().MalformedUTF8)
	}
}

func TestDecoderTruncatedUTF8(t *testing.T) {
	rec := &recorder{}
	d := NewDecoder(rec)
	// E2 94 82 is BOX DRAWINGS LIGHT VERTICAL; drop the last byte and
	// follow with ASCII.
	d.Write([]byte{0xE2, 0x94, 0x41})

	want := []string{`input '�'`, `input 'A'`}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderUTF8AcrossChunks(t *testing.T) {
	rec := &recorder{}
	d := NewDecoder(rec)
	d.Write([]byte{0xE2})
	d.Write([]byte{0x94})
	d.Write([]byte{0x82})

	want := []string{`input '│'`}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderOverlongRejected(t *testing.T) {
	rec := &recorder{}
	d := NewDecoder(rec)
	// C0 80 is an overlong encoding of NUL; C0 is an invalid leader.
	d.Write([]byte{0xC0, 0x80})

	if d.Stats().MalformedUTF8 == 0 {
		t.Errorf("expected MalformedUTF8 > 0")
	}
}

func TestDecoderEscapeInterruptsUTF8(t *testing.T) {
	rec := &recorder{}
	d := NewDecoder(rec)
	d.Write([]byte{0xE2, 0x1B, '[', 'A'})

	want := []string{`input '�'`, "up 1"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderCSIIgnoreAbsorbsMalformed(t *testing.T) {
	rec := &recorder{}
	d := NewDecoder(rec)
	// A private marker after digits is malformed; the final byte ends
	// the ignored sequence and the next byte prints normally.
	d.Write([]byte("\x1b[12?5hX"))

	want := []string{`input 'X'`}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
	if d.Stats().MalformedEscape != 1 {
		t.Errorf("MalformedEscape = %d, want 1", d.Stats().MalformedEscape)
	}
}

func TestDecoderCANAbortsSequence(t *testing.T) {
	rec := decode(t, "\x1b[12\x18A")
	want := []string{`input 'A'`}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderChunkingInvariance(t *testing.T) {
	input := "Hello \x1b[1;31mworld\x1b[0m │ \x1b[10;20H\x1b]0;title\x07\xE2\x94\x82 done\r\n"

	whole := &recorder{}
	dWhole := NewDecoder(whole)
	dWhole.Write([]byte(input))

	byByte := &recorder{}
	dByte := NewDecoder(byByte)
	for i := 0; i < len(input); i++ {
		dByte.Write([]byte{input[i]})
	}

	split := &recorder{}
	dSplit := NewDecoder(split)
	mid := len(input) / 3
	dSplit.Write([]byte(input[:mid]))
	dSplit.Write([]byte(input[mid : 2*mid]))
	dSplit.Write([]byte(input[2*mid:]))

	if !reflect.DeepEqual(whole.calls, byByte.calls) {
		t.Errorf("byte-at-a-time trace diverges:\nwhole: %v\nbytes: %v", whole.calls, byByte.calls)
	}
	if !reflect.DeepEqual(whole.calls, split.calls) {
		t.Errorf("split trace diverges:\nwhole: %v\nsplit: %v", whole.calls, split.calls)
	}
}

func TestDecoderParamClamp(t *testing.T) {
	rec := decode(t, "\x1b[999999999A")
	want := []string{fmt.Sprintf("up %d", maxParam)}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestDecoderParamLimit(t *testing.T) {
	// 20 parameters; the extras past 16 must be dropped, not crash.
	rec := decode(t, "\x1b[1;2;3;4;5;6;7;8;9;10;11;12;13;14;15;16;17;18;19;20m")
	if len(rec.calls) > maxParams {
		t.Errorf("got %d attribute calls, want <= %d", len(rec.calls), maxParams)
	}
}

func TestDecoderNeverPanics(t *testing.T) {
	inputs := [][]byte{
		[]byte("\x1b"),
		[]byte("\x1b["),
		[]byte("\x1b[;;;"),
		[]byte("\x1b]"),
		[]byte("\x1b]0;unterminated"),
		[]byte("\x1bP"),
		{0xFF, 0xFE, 0xFD},
		[]byte("\x1b[38;2m"),
		[]byte("\x1b[38;5m"),
		[]byte("\x1b(\x1b)\x1b#"),
	}
	for _, input := range inputs {
		rec := &recorder{}
		d := NewDecoder(rec)
		d.Write(input)
		d.Write([]byte("recover"))
	}
}
