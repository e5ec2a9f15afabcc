package actcliterm

import (
	"github.com/llm-case-studies/go-actcli-term/ansi"
)

// Ensure Terminal implements ansi.Handler
var _ ansi.Handler = (*Terminal)(nil)

// TerminalMode is a bitmask of terminal behavior flags.
// Multiple modes can be active simultaneously.
type TerminalMode uint32

const (
	// ModeCursorKeys enables application cursor key mode (DECCKM).
	ModeCursorKeys TerminalMode = 1 << iota
	// ModeColumnMode enables 132-column mode.
	ModeColumnMode
	// ModeInsert enables insert mode (characters shift right instead of overwrite).
	ModeInsert
	// ModeOrigin enables origin mode (cursor positioning relative to scroll region).
	ModeOrigin
	// ModeLineWrap enables automatic line wrapping at column boundaries (DECAWM).
	ModeLineWrap
	// ModeBlinkingCursor enables blinking cursor.
	ModeBlinkingCursor
	// ModeLineFeedNewLine makes line feed also move to column 0.
	ModeLineFeedNewLine
	// ModeShowCursor makes the cursor visible.
	ModeShowCursor
	// ModeReportMouseClicks enables mouse click reporting.
	ModeReportMouseClicks
	// ModeReportCellMouseMotion enables mouse motion reporting (cell-based).
	ModeReportCellMouseMotion
	// ModeReportAllMouseMotion enables reporting of all mouse motion events.
	ModeReportAllMouseMotion
	// ModeReportFocusInOut enables focus in/out event reporting.
	ModeReportFocusInOut
	// ModeUTF8Mouse enables UTF-8 mouse encoding.
	ModeUTF8Mouse
	// ModeSGRMouse enables SGR mouse encoding.
	ModeSGRMouse
	// ModeAlternateScroll enables alternate scroll mode.
	ModeAlternateScroll
	// ModeSwapScreenAndSetRestoreCursor swaps to the alternate screen and
	// saves the cursor. When unset, restores the primary screen and cursor.
	ModeSwapScreenAndSetRestoreCursor
	// ModeBracketedPaste enables bracketed paste mode.
	ModeBracketedPaste
	// ModeKeypadApplication enables application keypad mode.
	ModeKeypadApplication
)

const (
	// DefaultRows is the default number of terminal rows.
	DefaultRows = 24
	// DefaultCols is the default number of terminal columns.
	DefaultCols = 80
	// DefaultScrollbackCap is the default scrollback depth.
	DefaultScrollbackCap = 1000
)

// VisualRule identifies one caret resolution rule. Rules always evaluate
// in the order reverse, prompt, vt regardless of configuration order.
type VisualRule int

const (
	// VisualRuleReverse finds a short reverse-video run and treats its
	// first cell as the caret.
	VisualRuleReverse VisualRule = iota
	// VisualRulePrompt looks for a prompt marker near the bottom of the
	// screen and places the caret after the last input character.
	VisualRulePrompt
	// VisualRuleVT returns the standards-defined VT cursor.
	VisualRuleVT
)

// DefaultPromptMarkers are the prompt strings recognized by the prompt
// rule: the boxed prompt drawn by AI CLIs plus plain shell prompts.
var DefaultPromptMarkers = []string{"│ > ", "> ", "$ "}

// Selection defines a text region in the terminal that runs in reading
// order from Start to End, wrapping across whole rows in between.
// Start and End are normalized so Start is always before or equal to End.
type Selection struct {
	Start  Position
	End    Position
	Active bool
}

// Terminal is a headless VT102-class terminal emulator. It consumes the
// byte stream of a child process attached to a PTY and maintains a
// queryable model of the display: a grid of styled cells, cursor, scroll
// region, tab stops, saved state, and mode flags. On top of the VT
// cursor it derives the visual caret that AI CLIs paint with reverse
// video.
//
// The terminal takes no locks; callers serialize access. The typical
// embedding runs one Terminal per PTY in a goroutine that alternates
// between reading the PTY and calling Write.
type Terminal struct {
	rows int
	cols int

	primaryBuffer   *Buffer
	alternateBuffer *Buffer
	activeBuffer    *Buffer

	cursor      *Cursor
	savedCursor *SavedCursor

	// Current cell attributes
	template CellTemplate

	charsets      [4]Charset
	activeCharset int

	scrollTop    int
	scrollBottom int // exclusive

	modes TerminalMode

	title      string
	titleStack []string
	workingDir string

	currentHyperlink *Hyperlink

	promptMarks []PromptMark

	decoder *ansi.Decoder

	scrollbackStorage ScrollbackProvider
	responseProvider  ResponseProvider
	bellProvider      BellProvider
	titleProvider     TitleProvider
	recordingProvider RecordingProvider

	daPrimary []byte

	promptMarkers []string
	ruleReverse   bool
	rulePrompt    bool
	ruleVT        bool

	autowrapDefault bool

	generation uint64

	responsesDropped uint64
	resizeRejected   uint64

	selection Selection
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithSize sets the terminal dimensions.
// Values <= 0 are replaced with defaults (24x80).
func WithSize(rows, cols int) Option {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}

	return func(t *Terminal) {
		t.rows = rows
		t.cols = cols
	}
}

// WithScrollback sets the storage for retired lines. Lines scrolled off
// the top are pushed here.
func WithScrollback(storage ScrollbackProvider) Option {
	return func(t *Terminal) {
		t.scrollbackStorage = storage
	}
}

// WithScrollbackCap sets the in-memory scrollback depth. 0 disables
// scrollback. Ignored when WithScrollback supplies custom storage.
func WithScrollbackCap(n int) Option {
	return func(t *Terminal) {
		if t.scrollbackStorage == nil {
			if n <= 0 {
				n = 0
			}
			t.scrollbackStorage = NewMemoryScrollback(n)
		}
	}
}

// WithResponse sets the sink for terminal responses (cursor position
// reports, device attributes). The sink is invoked synchronously from
// the feed path and must not block; a failed write drops the response
// and counts it in Metrics. If nil, responses are discarded.
func WithResponse(p ResponseProvider) Option {
	return func(t *Terminal) {
		t.responseProvider = p
	}
}

// WithBell sets the handler for bell events. Defaults to a no-op.
func WithBell(p BellProvider) Option {
	return func(t *Terminal) {
		t.bellProvider = p
	}
}

// WithTitle sets the handler for window title changes. Defaults to a
// no-op; the latest title is always readable via Title.
func WithTitle(p TitleProvider) Option {
	return func(t *Terminal) {
		t.titleProvider = p
	}
}

// WithRecording sets the handler for capturing raw input bytes before
// escape parsing. Useful for replay and regression capture.
func WithRecording(p RecordingProvider) Option {
	return func(t *Terminal) {
		t.recordingProvider = p
	}
}

// WithAutowrap sets the power-on value of autowrap mode. Default on.
func WithAutowrap(on bool) Option {
	return func(t *Terminal) {
		t.autowrapDefault = on
	}
}

// WithPromptMarkers sets the ordered marker strings for the prompt caret
// rule. An empty list disables the rule.
func WithPromptMarkers(markers ...string) Option {
	return func(t *Terminal) {
		t.promptMarkers = append([]string(nil), markers...)
	}
}

// WithVisualCursorRules restricts caret resolution to the given rules.
// Evaluation order is fixed (reverse, prompt, vt); passing only
// VisualRuleVT makes the VT cursor authoritative, as traditional shells
// expect.
func WithVisualCursorRules(rules ...VisualRule) Option {
	return func(t *Terminal) {
		t.ruleReverse = false
		t.rulePrompt = false
		t.ruleVT = false
		for _, r := range rules {
			switch r {
			case VisualRuleReverse:
				t.ruleReverse = true
			case VisualRulePrompt:
				t.rulePrompt = true
			case VisualRuleVT:
				t.ruleVT = true
			}
		}
	}
}

// WithDAPrimary overrides the primary device attributes response.
func WithDAPrimary(resp []byte) Option {
	return func(t *Terminal) {
		t.daPrimary = append([]byte(nil), resp...)
	}
}

// New creates a terminal with the given options.
// Defaults to 24x80, autowrap on, cursor visible, 1000 lines of
// scrollback, and all three caret rules enabled.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		rows:              DefaultRows,
		cols:              DefaultCols,
		bellProvider:      NoopBell{},
		titleProvider:     NoopTitle{},
		recordingProvider: NoopRecording{},
		daPrimary:         []byte("\x1b[?6c"), // VT102
		promptMarkers:     append([]string(nil), DefaultPromptMarkers...),
		ruleReverse:       true,
		rulePrompt:        true,
		ruleVT:            true,
		autowrapDefault:   true,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.scrollbackStorage == nil {
		t.scrollbackStorage = NewMemoryScrollback(DefaultScrollbackCap)
	}
	t.primaryBuffer = NewBufferWithStorage(t.rows, t.cols, t.scrollbackStorage)
	t.alternateBuffer = NewBuffer(t.rows, t.cols) // no scrollback
	t.activeBuffer = t.primaryBuffer

	t.cursor = NewCursor()
	t.template = NewCellTemplate()

	t.scrollTop = 0
	t.scrollBottom = t.rows

	t.modes = ModeShowCursor
	if t.autowrapDefault {
		t.modes |= ModeLineWrap
	}

	t.decoder = ansi.NewDecoder(t)

	return t
}

// Rows returns the terminal height in character rows.
func (t *Terminal) Rows() int {
	return t.rows
}

// Cols returns the terminal width in character columns.
func (t *Terminal) Cols() int {
	return t.cols
}

// Cell returns the cell at (row, col) in the active buffer.
// Returns nil if coordinates are out of bounds.
func (t *Terminal) Cell(row, col int) *Cell {
	return t.activeBuffer.Cell(row, col)
}

// Row returns a copy of one row of the active buffer, or nil when row
// is out of bounds.
func (t *Terminal) Row(row int) []Cell {
	return t.activeBuffer.Row(row)
}

// Region returns a copy of a rectangle of the active buffer, clipped to
// the grid.
func (t *Terminal) Region(top, left, rows, cols int) [][]Cell {
	return t.activeBuffer.Region(top, left, rows, cols)
}

// CursorPos returns the current VT cursor position (0-based). The column
// may equal Cols while a wrap is pending.
func (t *Terminal) CursorPos() (row, col int) {
	return t.cursor.Row, t.cursor.Col
}

// PendingWrap returns true when a glyph was just written to the last
// column and the next printable glyph will wrap before placement.
func (t *Terminal) PendingWrap() bool {
	return t.cursor.PendingWrap
}

// CursorVisible returns true if the cursor is currently visible.
func (t *Terminal) CursorVisible() bool {
	return t.cursor.Visible
}

// CursorStyle returns the current cursor rendering style.
func (t *Terminal) CursorStyle() CursorStyle {
	return t.cursor.Style
}

// Title returns the current window title string.
func (t *Terminal) Title() string {
	return t.title
}

// WorkingDirectory returns the working directory URI advertised via
// OSC 7, or "" if none was received.
func (t *Terminal) WorkingDirectory() string {
	return t.workingDir
}

// HasMode returns true if the specified mode flag is enabled.
func (t *Terminal) HasMode(mode TerminalMode) bool {
	return t.modes&mode != 0
}

// Generation returns a monotonic counter incremented on every mutation.
// Consumers compare generations to skip redundant redraws.
func (t *Terminal) Generation() uint64 {
	return t.generation
}

// IsAlternateScreen returns true if the alternate buffer is active.
func (t *Terminal) IsAlternateScreen() bool {
	return t.activeBuffer == t.alternateBuffer
}

// ScrollRegion returns the current scrolling boundaries (0-based,
// exclusive bottom).
func (t *Terminal) ScrollRegion() (top, bottom int) {
	return t.scrollTop, t.scrollBottom
}

// Resize changes the terminal dimensions. Content reflows by truncation:
// a narrower grid clips trailing cells, a wider one pads with defaults.
// When shrinking rows on the primary screen, lines are scrolled into
// scrollback to keep the cursor visible. The cursor is clamped to the
// new bounds and the scroll region resets to full screen.
// Dimensions < 1 are rejected and counted in Metrics.
func (t *Terminal) Resize(rows, cols int) {
	if rows < 1 || cols < 1 {
		t.resizeRejected++
		return
	}

	oldRows := t.rows

	if rows < oldRows && t.activeBuffer == t.primaryBuffer {
		if t.cursor.Row >= rows {
			linesToScroll := oldRows - rows
			t.primaryBuffer.ScrollUp(0, oldRows, linesToScroll, NewCell())
			t.cursor.Row -= linesToScroll
			if t.cursor.Row < 0 {
				t.cursor.Row = 0
			}
		}
	}

	t.rows = rows
	t.cols = cols
	t.primaryBuffer.Resize(rows, cols)
	t.alternateBuffer.Resize(rows, cols)

	t.cursor.Row = clamp(t.cursor.Row, 0, rows-1)
	t.cursor.Col = clamp(t.cursor.Col, 0, cols-1)
	t.cursor.PendingWrap = false

	t.scrollTop = 0
	t.scrollBottom = rows
	t.touch()
}

// SetScrollbackCap adjusts the scrollback depth, trimming the oldest
// lines over the new cap; 0 disables scrollback and drops stored lines.
func (t *Terminal) SetScrollbackCap(n int) {
	t.primaryBuffer.SetMaxScrollback(n)
}

// Write processes raw bytes, parsing escape sequences and updating the
// terminal state. Feeding a stream in any chunking yields identical
// state. Implements io.Writer; the returned error is always nil.
func (t *Terminal) Write(data []byte) (int, error) {
	t.recordingProvider.Record(data)
	return t.decoder.Write(data)
}

// WriteString converts the string to bytes and calls Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// clamp ensures the value is within the given range.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// touch records a state mutation for generation tracking.
func (t *Terminal) touch() {
	t.generation++
}

// originTop returns the lowest row the cursor may occupy under the
// current origin mode.
func (t *Terminal) originTop() int {
	if t.modes&ModeOrigin != 0 {
		return t.scrollTop
	}
	return 0
}

// originBottom returns one past the highest row the cursor may occupy
// under the current origin mode.
func (t *Terminal) originBottom() int {
	if t.modes&ModeOrigin != 0 {
		return t.scrollBottom
	}
	return t.rows
}

// effectiveRow translates a row addressed by the application into a grid
// row, honoring origin mode.
func (t *Terminal) effectiveRow(row int) int {
	if t.modes&ModeOrigin != 0 {
		return row + t.scrollTop
	}
	return row
}

// scrollIfNeeded follows a one-row downward cursor move: it scrolls the
// region up when the cursor stepped off the region's bottom line, and
// otherwise only keeps the cursor on the screen.
func (t *Terminal) scrollIfNeeded() {
	if t.cursor.Row == t.scrollBottom {
		t.activeBuffer.ScrollUp(t.scrollTop, t.scrollBottom, 1, t.blankCell())
		t.cursor.Row = t.scrollBottom - 1
	} else if t.cursor.Row >= t.rows {
		t.cursor.Row = t.rows - 1
	}
}

// blankCell is the template for erased and shifted-in cells: a space
// carrying the current SGR background over the default foreground
// (background color erase).
func (t *Terminal) blankCell() Cell {
	c := NewCell()
	c.Bg = t.template.Bg
	return c
}

// writeResponse pushes response bytes to the configured sink. The sink
// must not block; any write error drops the response and is counted.
func (t *Terminal) writeResponse(data []byte) {
	if t.responseProvider == nil {
		return
	}
	if _, err := t.responseProvider.Write(data); err != nil {
		t.responsesDropped++
	}
}

// writeResponseString writes a string response to the sink.
func (t *Terminal) writeResponseString(s string) {
	t.writeResponse([]byte(s))
}

// --- Scrollback Methods ---

// ScrollbackLen returns the number of lines stored in scrollback
// (primary buffer only).
func (t *Terminal) ScrollbackLen() int {
	return t.primaryBuffer.ScrollbackLen()
}

// ScrollbackLine returns a line from scrollback, where 0 is the oldest
// line. Returns nil if index is out of range.
func (t *Terminal) ScrollbackLine(index int) []Cell {
	return t.primaryBuffer.ScrollbackLine(index)
}

// ClearScrollback removes all stored scrollback lines.
func (t *Terminal) ClearScrollback() {
	t.primaryBuffer.ClearScrollback()
}

// --- Recording Methods ---

// RecordedData returns all raw input bytes captured since the last
// ClearRecording call.
func (t *Terminal) RecordedData() []byte {
	return t.recordingProvider.Data()
}

// ClearRecording discards all captured input data.
func (t *Terminal) ClearRecording() {
	t.recordingProvider.Clear()
}

// --- Wrapped Line Tracking ---

// IsWrapped returns true if the line was wrapped due to column overflow,
// false if it ended with an explicit newline.
func (t *Terminal) IsWrapped(row int) bool {
	return t.activeBuffer.IsWrapped(row)
}

// --- Convenience Methods ---

// LineContent returns the text content of a line, trimming trailing
// spaces.
func (t *Terminal) LineContent(row int) string {
	return t.activeBuffer.LineContent(row)
}

// String returns the visible screen content as a newline-separated
// string. Trailing empty lines are omitted. Implements fmt.Stringer.
func (t *Terminal) String() string {
	var lines []string
	lastNonEmpty := -1

	for row := 0; row < t.rows; row++ {
		line := t.activeBuffer.LineContent(row)
		lines = append(lines, line)
		if line != "" {
			lastNonEmpty = row
		}
	}

	if lastNonEmpty < 0 {
		return ""
	}

	result := ""
	for i, line := range lines[:lastNonEmpty+1] {
		if i > 0 {
			result += "\n"
		}
		result += line
	}

	return result
}

// Search finds all occurrences of pattern in the visible screen content.
// Returns positions of the first character of each match.
func (t *Terminal) Search(pattern string) []Position {
	if pattern == "" {
		return nil
	}

	var matches []Position
	patternRunes := []rune(pattern)

	for row := 0; row < t.rows; row++ {
		lineRunes := []rune(t.activeBuffer.LineContent(row))
		matches = append(matches, matchLine(lineRunes, patternRunes, row)...)
	}

	return matches
}

// SearchScrollback finds all occurrences of pattern in scrollback lines.
// Returned row values are negative, where -1 is the most recent
// scrollback line.
func (t *Terminal) SearchScrollback(pattern string) []Position {
	if pattern == "" {
		return nil
	}

	var matches []Position
	patternRunes := []rune(pattern)
	scrollbackLen := t.primaryBuffer.ScrollbackLen()

	for i := 0; i < scrollbackLen; i++ {
		line := t.primaryBuffer.ScrollbackLine(i)
		if line == nil {
			continue
		}

		var lineRunes []rune
		for _, cell := range line {
			if cell.IsWideSpacer() {
				continue
			}
			if cell.Char == 0 {
				lineRunes = append(lineRunes, ' ')
			} else {
				lineRunes = append(lineRunes, cell.Char)
			}
		}

		matches = append(matches, matchLine(lineRunes, patternRunes, -(scrollbackLen - i))...)
	}

	return matches
}

// matchLine finds pattern occurrences within one line of runes.
func matchLine(line, pattern []rune, row int) []Position {
	var matches []Position
	for col := 0; col <= len(line)-len(pattern); col++ {
		found := true
		for i, pr := range pattern {
			if line[col+i] != pr {
				found = false
				break
			}
		}
		if found {
			matches = append(matches, Position{Row: row, Col: col})
		}
	}
	return matches
}
