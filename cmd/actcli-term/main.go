// Command actcli-term runs a program under a wrapped terminal and
// renders it live with tcell. It exists to eyeball the emulation against
// real CLIs: the caret you see is the resolved visual caret, not the VT
// cursor.
//
// Usage:
//
//	actcli-term [-vt] [-markers "│ > ,> ,$ "] command [args...]
package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	actcliterm "github.com/llm-case-studies/go-actcli-term"
	"github.com/llm-case-studies/go-actcli-term/runner"
)

func main() {
	vtOnly := flag.Bool("vt", false, "report the VT cursor instead of the visual caret")
	markers := flag.String("markers", "", "comma-separated prompt markers (default built-in set)")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("usage: actcli-term [-vt] command [args...]")
	}

	var opts []actcliterm.Option
	if *vtOnly {
		opts = append(opts, actcliterm.WithVisualCursorRules(actcliterm.VisualRuleVT))
	}
	if *markers != "" {
		opts = append(opts, actcliterm.WithPromptMarkers(strings.Split(*markers, ",")...))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("tcell: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("tcell: %v", err)
	}
	defer screen.Fini()

	cols, rows := screen.Size()

	r := runner.New(flag.Args(), opts...)

	redraw := make(chan struct{}, 1)
	r.OnUpdate = func() {
		select {
		case redraw <- struct{}{}:
		default:
		}
	}

	if err := r.Start(rows, cols); err != nil {
		screen.Fini()
		log.Fatal(err)
	}
	defer r.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			events <- screen.PollEvent()
		}
	}()

	var lastGen uint64
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-redraw:
			lastGen = draw(screen, r, lastGen)
		case <-ticker.C:
			lastGen = draw(screen, r, lastGen)
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				c, rws := screen.Size()
				r.Resize(rws, c)
				screen.Sync()
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlQ {
					return
				}
				if seq := keySequence(ev); seq != "" {
					if err := r.SendText(seq); err != nil {
						return
					}
				}
			}
		}
	}
}

// draw renders the current frame, skipping when the generation counter
// has not moved.
func draw(screen tcell.Screen, r *runner.Runner, lastGen uint64) uint64 {
	snap := r.Snapshot(actcliterm.SnapshotDetailFull)
	if snap.Generation == lastGen {
		return lastGen
	}

	screen.Clear()
	for row, line := range snap.Lines {
		col := 0
		for _, cell := range line.Cells {
			if cell.WideSpacer {
				col++
				continue
			}

			style := tcell.StyleDefault
			if cell.Fg != "" {
				style = style.Foreground(tcell.GetColor(cell.Fg))
			}
			if cell.Bg != "" {
				style = style.Background(tcell.GetColor(cell.Bg))
			}
			style = style.
				Bold(cell.Attributes.Bold).
				Dim(cell.Attributes.Dim).
				Italic(cell.Attributes.Italic).
				Underline(cell.Attributes.Underline).
				Blink(cell.Attributes.Blink).
				Reverse(cell.Attributes.Reverse).
				StrikeThrough(cell.Attributes.Strikethrough)

			ch := []rune(cell.Char)
			if len(ch) == 0 {
				ch = []rune{' '}
			}
			screen.SetContent(col, row, ch[0], nil, style)
			col += runewidth.RuneWidth(ch[0])
			if col <= 0 {
				col++
			}
		}
	}

	if snap.Caret.Visible {
		screen.ShowCursor(snap.Caret.Col, snap.Caret.Row)
	} else {
		screen.HideCursor()
	}

	screen.Show()
	return snap.Generation
}

// keySequence translates a tcell key event into the bytes a terminal
// would send.
func keySequence(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyRune:
		return string(ev.Rune())
	case tcell.KeyEnter:
		return "\r"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "\x7f"
	case tcell.KeyTab:
		return "\t"
	case tcell.KeyEsc:
		return "\x1b"
	case tcell.KeyLeft:
		return "\x1b[D"
	case tcell.KeyRight:
		return "\x1b[C"
	case tcell.KeyUp:
		return "\x1b[A"
	case tcell.KeyDown:
		return "\x1b[B"
	case tcell.KeyHome:
		return "\x1b[H"
	case tcell.KeyEnd:
		return "\x1b[F"
	case tcell.KeyPgUp:
		return "\x1b[5~"
	case tcell.KeyPgDn:
		return "\x1b[6~"
	case tcell.KeyDelete:
		return "\x1b[3~"
	case tcell.KeyInsert:
		return "\x1b[2~"
	case tcell.KeyCtrlC:
		return "\x03"
	case tcell.KeyCtrlD:
		return "\x04"
	case tcell.KeyCtrlZ:
		return "\x1a"
	case tcell.KeyCtrlL:
		return "\x0c"
	default:
		return ""
	}
}
