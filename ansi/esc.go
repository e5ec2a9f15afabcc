package ansi

// escDispatch handles ESC sequences without intermediates.
func (d *Decoder) escDispatch(b byte) {
	switch b {
	case '7': // DECSC
		d.handler.SaveCursorPosition()
	case '8': // DECRC
		d.handler.RestoreCursorPosition()
	case '=': // DECKPAM
		d.handler.SetKeypadApplicationMode()
	case '>': // DECKPNM
		d.handler.UnsetKeypadApplicationMode()
	case 'c': // RIS
		d.handler.ResetState()
	case 'D': // IND
		d.handler.LineFeed()
	case 'E': // NEL
		d.handler.CarriageReturn()
		d.handler.LineFeed()
	case 'H': // HTS
		d.handler.HorizontalTabSet()
	case 'M': // RI
		d.handler.ReverseIndex()
	case 'Z': // DECID, answered like primary DA
		d.handler.IdentifyTerminal(0)
	case '\\': // ST with no open string
	default:
		d.stats.UnknownEscape++
	}
}

// escIntermediateDispatch handles ESC sequences with intermediates,
// charset selection and DECALN among them.
func (d *Decoder) escIntermediateDispatch(b byte) {
	if len(d.intermed) != 1 {
		d.stats.UnknownEscape++
		return
	}

	switch d.intermed[0] {
	case '(', ')', '*', '+':
		index := CharsetIndex(d.intermed[0] - '(')
		d.handler.ConfigureCharset(index, charsetFromByte(b))
	case '#':
		if b == '8' {
			d.handler.Decaln()
			return
		}
		d.stats.UnknownEscape++
	default:
		d.stats.UnknownEscape++
	}
}

// charsetFromByte maps a designator to a charset; anything that is not
// DEC line drawing falls back to ASCII.
func charsetFromByte(b byte) Charset {
	if b == '0' {
		return CharsetLineDrawing
	}
	return CharsetASCII
}
