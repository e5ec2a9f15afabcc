// Package actcliterm provides a headless VT102-class terminal emulator
// tuned for wrapping AI command-line clients.
//
// The package consumes the byte stream of a child process attached to a
// pseudo-terminal and maintains a faithful, queryable model of a
// character-cell display: a grid of styled cells, a cursor, scroll
// region, tab stops, saved state, and mode flags. On top of the
// standards-defined VT cursor it resolves the visual caret that modern
// AI CLIs (Claude, Codex, Gemini) indicate with reverse-video
// highlighting instead of explicit cursor positioning.
//
// # Quick Start
//
// Create a terminal and write escape-laden bytes to it:
//
//	term := actcliterm.New()
//	term.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(term.String()) // "Hello World!"
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Terminal]: the emulator; implements [ansi.Handler] and io.Writer
//   - [Buffer]: a 2D grid of cells with scrollback support
//   - [Cell]: a single character with colors and attributes
//   - [Snapshot]: an immutable frame for UI consumers
//
// Escape-sequence recognition lives in the ansi subpackage: a byte-driven
// state machine following the VT500-series parser diagram. The decoder
// dispatches commands to the Terminal; feeding a stream in any chunking
// yields identical state.
//
// # Probe Responses
//
// Applications probe their terminal. Codex in particular polls the
// cursor position with DSR and hangs without an answer. Configure a
// response sink and forward its bytes to the PTY verbatim:
//
//	queue := actcliterm.NewResponseQueue(32)
//	term := actcliterm.New(actcliterm.WithResponse(queue))
//	// elsewhere: ptmx.Write(queue.Next())
//
// The sink is never allowed to block the feed path; a full queue drops
// the response and counts it in [Terminal.Metrics].
//
// # The Visual Caret
//
// AI CLIs paint the caret as a reverse-video cell near the input box and
// leave the VT cursor at end of line. [Terminal.VisualCursor] resolves
// the caret with three rules evaluated in order: a reverse-video run
// scan, a prompt-marker heuristic, and the VT cursor as fallback.
// Traditional shells can pin the caret to the VT cursor:
//
//	term := actcliterm.New(actcliterm.WithVisualCursorRules(actcliterm.VisualRuleVT))
//
// # Concurrency
//
// The terminal takes no locks. Run one Terminal per PTY and serialize
// access; the runner subpackage shows the canonical embedding.
package actcliterm
