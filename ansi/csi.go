package ansi

// param returns the i-th parameter, substituting def when it is
// missing or zero.
func (d *Decoder) param(i, def int) int {
	if i < len(d.params) && d.params[i] != 0 {
		return d.params[i]
	}
	return def
}

// rawParam returns the i-th parameter with zero preserved.
func (d *Decoder) rawParam(i int) int {
	if i < len(d.params) {
		return d.params[i]
	}
	return 0
}

// csiDispatch routes a complete CSI sequence to the handler.
func (d *Decoder) csiDispatch(final byte) {
	if len(d.intermed) > 0 {
		d.csiIntermediateDispatch(final)
		return
	}

	switch final {
	case '@': // ICH
		d.handler.InsertBlank(d.param(0, 1))
	case 'A': // CUU
		d.handler.MoveUp(d.param(0, 1))
	case 'B', 'e': // CUD, VPR
		d.handler.MoveDown(d.param(0, 1))
	case 'C', 'a': // CUF, HPR
		d.handler.MoveForward(d.param(0, 1))
	case 'D': // CUB
		d.handler.MoveBackward(d.param(0, 1))
	case 'E': // CNL
		d.handler.MoveDownCr(d.param(0, 1))
	case 'F': // CPL
		d.handler.MoveUpCr(d.param(0, 1))
	case 'G', '`': // CHA, HPA
		d.handler.GotoCol(d.param(0, 1) - 1)
	case 'H', 'f': // CUP, HVP
		d.handler.Goto(d.param(0, 1)-1, d.param(1, 1)-1)
	case 'I': // CHT
		d.handler.MoveForwardTabs(d.param(0, 1))
	case 'J': // ED
		d.handler.ClearScreen(clearMode(d.rawParam(0)))
	case 'K': // EL
		d.handler.ClearLine(lineClearMode(d.rawParam(0)))
	case 'L': // IL
		d.handler.InsertBlankLines(d.param(0, 1))
	case 'M': // DL
		d.handler.DeleteLines(d.param(0, 1))
	case 'P': // DCH
		d.handler.DeleteChars(d.param(0, 1))
	case 'S': // SU
		d.handler.ScrollUp(d.param(0, 1))
	case 'T': // SD
		d.handler.ScrollDown(d.param(0, 1))
	case 'X': // ECH
		d.handler.EraseChars(d.param(0, 1))
	case 'Z': // CBT
		d.handler.MoveBackwardTabs(d.param(0, 1))
	case 'c': // DA
		if d.private == 0 || d.private == '>' {
			d.handler.IdentifyTerminal(d.private)
		}
	case 'd': // VPA
		d.handler.GotoLine(d.param(0, 1) - 1)
	case 'g': // TBC
		switch d.rawParam(0) {
		case 0:
			d.handler.ClearTabs(TabClearModeCurrent)
		case 3:
			d.handler.ClearTabs(TabClearModeAll)
		}
	case 'h':
		d.setModes(true)
	case 'l':
		d.setModes(false)
	case 'm':
		if d.private != 0 {
			return // xterm key-modifier options, not handled
		}
		d.sgr()
	case 'n': // DSR
		d.handler.DeviceStatus(d.rawParam(0))
	case 'r': // DECSTBM
		if d.private != 0 {
			return
		}
		d.handler.SetScrollingRegion(d.param(0, 1), d.rawParam(1))
	case 's':
		d.handler.SaveCursorPosition()
	case 't': // XTWINOPS; only the title stack is honored
		switch d.rawParam(0) {
		case 22:
			d.handler.PushTitle()
		case 23:
			d.handler.PopTitle()
		}
	case 'u':
		d.handler.RestoreCursorPosition()
	default:
		d.stats.UnknownCSI++
	}
}

// csiIntermediateDispatch handles CSI sequences carrying intermediate
// bytes. DECSCUSR is the only one acted on.
func (d *Decoder) csiIntermediateDispatch(final byte) {
	if len(d.intermed) == 1 && d.intermed[0] == ' ' && final == 'q' {
		style := d.rawParam(0)
		if style >= 1 && style <= 6 {
			d.handler.SetCursorStyle(CursorStyle(style - 1))
		} else {
			d.handler.SetCursorStyle(CursorStyleBlinkingBlock)
		}
		return
	}
	d.stats.UnknownCSI++
}

// setModes applies every parameter of an SM/RM or DECSET/DECRST
// sequence. Unknown modes are counted and skipped.
func (d *Decoder) setModes(set bool) {
	private := d.private == '?'
	if d.private != 0 && !private {
		d.stats.UnknownCSI++
		return
	}
	for i := 0; i < len(d.params); i++ {
		mode, ok := lookupMode(d.params[i], private)
		if !ok {
			d.stats.UnknownMode++
			continue
		}
		if set {
			d.handler.SetMode(mode)
		} else {
			d.handler.UnsetMode(mode)
		}
	}
}

func clearMode(p int) ClearMode {
	switch p {
	case 1:
		return ClearModeAbove
	case 2:
		return ClearModeAll
	case 3:
		return ClearModeSaved
	default:
		return ClearModeBelow
	}
}

func lineClearMode(p int) LineClearMode {
	switch p {
	case 1:
		return LineClearModeLeft
	case 2:
		return LineClearModeAll
	default:
		return LineClearModeRight
	}
}

// sgr decodes a Select Graphic Rendition parameter list into a series
// of attribute calls. Missing parameters mean reset; unknown values
// are skipped without error.
func (d *Decoder) sgr() {
	params := d.params
	if len(params) == 0 {
		params = []int{0}
	}

	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			d.attr(CharAttribute{Kind: AttrReset})
		case p == 1:
			d.attr(CharAttribute{Kind: AttrBold})
		case p == 2:
			d.attr(CharAttribute{Kind: AttrDim})
		case p == 3:
			d.attr(CharAttribute{Kind: AttrItalic})
		case p == 4:
			d.attr(CharAttribute{Kind: AttrUnderline})
		case p == 5:
			d.attr(CharAttribute{Kind: AttrBlinkSlow})
		case p == 6:
			d.attr(CharAttribute{Kind: AttrBlinkFast})
		case p == 7:
			d.attr(CharAttribute{Kind: AttrReverse})
		case p == 8:
			d.attr(CharAttribute{Kind: AttrHidden})
		case p == 9:
			d.attr(CharAttribute{Kind: AttrStrike})
		case p == 21, p == 22:
			d.attr(CharAttribute{Kind: AttrCancelBoldDim})
		case p == 23:
			d.attr(CharAttribute{Kind: AttrCancelItalic})
		case p == 24:
			d.attr(CharAttribute{Kind: AttrCancelUnderline})
		case p == 25:
			d.attr(CharAttribute{Kind: AttrCancelBlink})
		case p == 27:
			d.attr(CharAttribute{Kind: AttrCancelReverse})
		case p == 28:
			d.attr(CharAttribute{Kind: AttrCancelHidden})
		case p == 29:
			d.attr(CharAttribute{Kind: AttrCancelStrike})
		case p >= 30 && p <= 37:
			named := p - 30
			d.attr(CharAttribute{Kind: AttrForeground, Named: &named})
		case p == 38:
			attr, consumed := extendedColor(params[i+1:], AttrForeground)
			if attr != nil {
				d.attr(*attr)
			}
			i += consumed
		case p == 39:
			named := NamedForeground
			d.attr(CharAttribute{Kind: AttrForeground, Named: &named})
		case p >= 40 && p <= 47:
			named := p - 40
			d.attr(CharAttribute{Kind: AttrBackground, Named: &named})
		case p == 48:
			attr, consumed := extendedColor(params[i+1:], AttrBackground)
			if attr != nil {
				d.attr(*attr)
			}
			i += consumed
		case p == 49:
			named := NamedBackground
			d.attr(CharAttribute{Kind: AttrBackground, Named: &named})
		case p >= 90 && p <= 97:
			named := p - 90 + 8
			d.attr(CharAttribute{Kind: AttrForeground, Named: &named})
		case p >= 100 && p <= 107:
			named := p - 100 + 8
			d.attr(CharAttribute{Kind: AttrBackground, Named: &named})
		}
	}
}

func (d *Decoder) attr(a CharAttribute) {
	d.handler.SetTerminalCharAttribute(a)
}

// extendedColor decodes the tail of SGR 38/48: `5;n` for indexed and
// `2;r;g;b` for direct color. Returns the attribute (nil when the tail
// is malformed) and how many parameters were consumed.
func extendedColor(rest []int, kind CharAttrKind) (*CharAttribute, int) {
	if len(rest) == 0 {
		return nil, 0
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return nil, len(rest)
		}
		idx := uint8(clampByte(rest[1]))
		return &CharAttribute{Kind: kind, Indexed: &idx}, 2
	case 2:
		if len(rest) < 4 {
			return nil, len(rest)
		}
		rgb := RGB{
			R: uint8(clampByte(rest[1])),
			G: uint8(clampByte(rest[2])),
			B: uint8(clampByte(rest[3])),
		}
		return &CharAttribute{Kind: kind, RGB: &rgb}, 4
	default:
		return nil, 1
	}
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
