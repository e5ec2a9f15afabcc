package actcliterm

// selection state lives outside the VT model: it is owned by the
// embedding UI, never by the child process.

// SetSelection sets the active text selection region. Start and end are
// normalized so start is before or equal to end.
func (t *Terminal) SetSelection(start, end Position) {
	if end.Before(start) {
		start, end = end, start
	}

	t.selection = Selection{
		Start:  start,
		End:    end,
		Active: true,
	}
}

// ClearSelection deactivates the current selection.
func (t *Terminal) ClearSelection() {
	t.selection.Active = false
}

// GetSelection returns the current selection state.
func (t *Terminal) GetSelection() Selection {
	return t.selection
}

// HasSelection returns true if a selection is currently active.
func (t *Terminal) HasSelection() bool {
	return t.selection.Active
}

// IsSelected returns true if the cell at (row, col) is within the active
// selection.
func (t *Terminal) IsSelected(row, col int) bool {
	if !t.selection.Active {
		return false
	}

	pos := Position{Row: row, Col: col}
	if pos.Before(t.selection.Start) {
		return false
	}
	if t.selection.End.Before(pos) {
		return false
	}
	return true
}

// GetSelectedText extracts the text content within the active selection.
// Empty cells become spaces; newlines separate rows.
func (t *Terminal) GetSelectedText() string {
	if !t.selection.Active {
		return ""
	}

	start := t.selection.Start
	end := t.selection.End

	var result []rune

	for row := start.Row; row <= end.Row && row < t.rows; row++ {
		startCol := 0
		endCol := t.cols

		if row == start.Row {
			startCol = start.Col
		}
		if row == end.Row {
			endCol = end.Col + 1
		}

		for col := startCol; col < endCol && col < t.cols; col++ {
			cell := t.activeBuffer.Cell(row, col)
			if cell == nil || cell.IsWideSpacer() {
				continue
			}
			if cell.Char == 0 {
				result = append(result, ' ')
			} else {
				result = append(result, cell.Char)
			}
		}

		if row < end.Row {
			result = append(result, '\n')
		}
	}

	return string(result)
}
