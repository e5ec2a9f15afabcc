package actcliterm

import "github.com/llm-case-studies/go-actcli-term/ansi"

// PromptMarkKind classifies a semantic prompt mark (OSC 133).
type PromptMarkKind int

const (
	// PromptMarkPromptStart marks the beginning of a shell prompt (A).
	PromptMarkPromptStart PromptMarkKind = iota
	// PromptMarkCommandStart marks the start of user input (B).
	PromptMarkCommandStart
	// PromptMarkOutputStart marks the start of command output (C).
	PromptMarkOutputStart
	// PromptMarkCommandDone marks command completion (D), with exit code.
	PromptMarkCommandDone
)

// PromptMark records one semantic prompt boundary.
type PromptMark struct {
	Kind PromptMarkKind
	// Row is the absolute row at the time of the mark: the cursor row
	// plus the scrollback length, so marks stay addressable after the
	// line scrolls off.
	Row int
	// ExitCode is the command exit code for PromptMarkCommandDone,
	// -1 otherwise.
	ExitCode int
}

// PromptMark records an OSC 133 mark at the current cursor position.
func (t *Terminal) PromptMark(kind ansi.PromptMarkKind, exitCode int) {
	mark := PromptMark{
		Row:      t.cursor.Row + t.primaryBuffer.ScrollbackLen(),
		ExitCode: -1,
	}

	switch kind {
	case ansi.PromptMarkPromptStart:
		mark.Kind = PromptMarkPromptStart
	case ansi.PromptMarkCommandStart:
		mark.Kind = PromptMarkCommandStart
	case ansi.PromptMarkOutputStart:
		mark.Kind = PromptMarkOutputStart
	case ansi.PromptMarkCommandDone:
		mark.Kind = PromptMarkCommandDone
		mark.ExitCode = exitCode
	default:
		return
	}

	t.promptMarks = append(t.promptMarks, mark)

	// Bound the history; old marks reference long-gone rows anyway.
	const maxMarks = 256
	if len(t.promptMarks) > maxMarks {
		t.promptMarks = t.promptMarks[len(t.promptMarks)-maxMarks:]
	}
}

// PromptMarks returns the recorded semantic prompt marks, oldest first.
func (t *Terminal) PromptMarks() []PromptMark {
	marks := make([]PromptMark, len(t.promptMarks))
	copy(marks, t.promptMarks)
	return marks
}

// LastPromptRow returns the absolute row of the most recent prompt start
// mark, or -1 when no prompt mark was seen.
func (t *Terminal) LastPromptRow() int {
	for i := len(t.promptMarks) - 1; i >= 0; i-- {
		if t.promptMarks[i].Kind == PromptMarkPromptStart {
			return t.promptMarks[i].Row
		}
	}
	return -1
}
