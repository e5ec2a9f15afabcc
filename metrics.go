package actcliterm

// Metrics is a snapshot of the diagnostic counters. Every counter is a
// recoverable condition: the terminal never aborts on input.
type Metrics struct {
	// MalformedUTF8 counts ill-formed byte sequences replaced with U+FFFD.
	MalformedUTF8 uint64
	// MalformedEscape counts escape sequences absorbed without effect.
	MalformedEscape uint64
	// UnknownCSI counts recognized-but-unhandled CSI final bytes.
	UnknownCSI uint64
	// UnknownMode counts SM/RM and DECSET/DECRST parameters with no
	// known mode.
	UnknownMode uint64
	// UnknownEscape counts unrecognized ESC sequences.
	UnknownEscape uint64
	// ResponsesDropped counts probe responses lost to a full sink.
	ResponsesDropped uint64
	// ResizeRejected counts Resize calls with dimensions < 1.
	ResizeRejected uint64
}

// Metrics returns the current diagnostic counters.
func (t *Terminal) Metrics() Metrics {
	stats := t.decoder.Stats()
	return Metrics{
		MalformedUTF8:    stats.MalformedUTF8,
		MalformedEscape:  stats.MalformedEscape,
		UnknownCSI:       stats.UnknownCSI,
		UnknownMode:      stats.UnknownMode,
		UnknownEscape:    stats.UnknownEscape,
		ResponsesDropped: t.responsesDropped,
		ResizeRejected:   t.resizeRejected,
	}
}
