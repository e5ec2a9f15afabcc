package actcliterm

import "testing"

func TestSnapshotText(t *testing.T) {
	term := New(WithSize(5, 20))

	term.WriteString("one\r\ntwo")
	snap := term.Snapshot(SnapshotDetailText)

	if snap.Size.Rows != 5 || snap.Size.Cols != 20 {
		t.Errorf("size = %+v", snap.Size)
	}
	if len(snap.Lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(snap.Lines))
	}
	if snap.Lines[0].Text != "one" || snap.Lines[1].Text != "two" {
		t.Errorf("lines = %q, %q", snap.Lines[0].Text, snap.Lines[1].Text)
	}
	if snap.Lines[0].Segments != nil || snap.Lines[0].Cells != nil {
		t.Error("text detail must not carry segments or cells")
	}
}

func TestSnapshotStyledSegments(t *testing.T) {
	term := New(WithSize(5, 20))

	term.WriteString("ab\x1b[31mcd\x1b[0m")
	snap := term.Snapshot(SnapshotDetailStyled)

	segs := snap.Lines[0].Segments
	if len(segs) < 2 {
		t.Fatalf("segments = %d, want >= 2", len(segs))
	}
	if segs[0].Text != "ab" {
		t.Errorf("segment 0 = %q", segs[0].Text)
	}
	if segs[1].Text != "cd" {
		t.Errorf("segment 1 = %q", segs[1].Text)
	}
	if segs[0].Fg == segs[1].Fg {
		t.Error("segments with different colors must not merge")
	}
}

func TestSnapshotFullCells(t *testing.T) {
	term := New(WithSize(5, 20))

	term.WriteString("\x1b[7mX")
	snap := term.Snapshot(SnapshotDetailFull)

	cells := snap.Lines[0].Cells
	if len(cells) != 20 {
		t.Fatalf("cells = %d, want 20", len(cells))
	}
	if cells[0].Char != "X" || !cells[0].Attributes.Reverse {
		t.Errorf("cell 0 = %+v, want reverse X", cells[0])
	}

	// Every grid position is defined.
	for row := range snap.Lines {
		full := term.Snapshot(SnapshotDetailFull)
		if len(full.Lines[row].Cells) != 20 {
			t.Fatalf("row %d has %d cells", row, len(full.Lines[row].Cells))
		}
	}
}

func TestSnapshotCaret(t *testing.T) {
	term := New(WithSize(4, 80))

	term.WriteString("│ > welcome an\x1b[7mh\x1b[27mello !")
	snap := term.Snapshot(SnapshotDetailText)

	if snap.Caret.Row != 0 || snap.Caret.Col != 14 {
		t.Errorf("caret = (%d, %d), want (0, 14)", snap.Caret.Row, snap.Caret.Col)
	}
	if !snap.Caret.Visible {
		t.Error("caret must be visible while the cursor is")
	}
	if snap.Cursor.Col == snap.Caret.Col {
		t.Error("VT cursor and caret must diverge in this frame")
	}
}

func TestSnapshotCaretHidden(t *testing.T) {
	term := New(WithSize(4, 80))

	term.WriteString("x\x1b[?25l")
	snap := term.Snapshot(SnapshotDetailText)

	if snap.Caret.Visible || snap.Cursor.Visible {
		t.Error("hidden cursor must hide the caret too")
	}
}

func TestSnapshotGeneration(t *testing.T) {
	term := New(WithSize(5, 20))

	a := term.Snapshot(SnapshotDetailText)
	b := term.Snapshot(SnapshotDetailText)
	if a.Generation != b.Generation {
		t.Error("snapshots without mutation must share a generation")
	}

	term.WriteString("x")
	c := term.Snapshot(SnapshotDetailText)
	if c.Generation == b.Generation {
		t.Error("mutation must advance the snapshot generation")
	}
}

func TestSnapshotImmutable(t *testing.T) {
	term := New(WithSize(5, 20))

	term.WriteString("before")
	snap := term.Snapshot(SnapshotDetailText)

	term.WriteString("\x1b[2Jafter")

	if snap.Lines[0].Text != "before" {
		t.Errorf("snapshot changed after mutation: %q", snap.Lines[0].Text)
	}
}

func TestSnapshotWideChar(t *testing.T) {
	term := New(WithSize(5, 20))

	term.WriteString("你")
	snap := term.Snapshot(SnapshotDetailFull)

	cells := snap.Lines[0].Cells
	if !cells[0].Wide {
		t.Error("leader cell must be wide")
	}
	if !cells[1].WideSpacer {
		t.Error("second cell must be a spacer")
	}
}

func TestSnapshotHyperlink(t *testing.T) {
	term := New(WithSize(5, 40))

	term.WriteString("\x1b]8;;https://example.com\x07link\x1b]8;;\x07plain")
	snap := term.Snapshot(SnapshotDetailFull)

	cells := snap.Lines[0].Cells
	if cells[0].Hyperlink == nil || cells[0].Hyperlink.URI != "https://example.com" {
		t.Errorf("cell 0 hyperlink = %+v", cells[0].Hyperlink)
	}
	if cells[4].Hyperlink != nil {
		t.Errorf("cell 4 hyperlink = %+v, want nil", cells[4].Hyperlink)
	}
}
