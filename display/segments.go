package display

// Segment bits as wired on the shift register board.
//
//	 -    A
//	| |  F B
//	 -    G
//	| |  E C
//	 -.   D DP
const (
	SegA  byte = 1 << 0
	SegF  byte = 1 << 1
	SegG  byte = 1 << 2
	SegE  byte = 1 << 3
	SegD  byte = 1 << 4
	SegC  byte = 1 << 5
	SegB  byte = 1 << 6
	SegDP byte = 1 << 7
)

// Glyphs other than the digit values 0-9.
const (
	GlyphBlank byte = ' '
	GlyphMinus byte = '-'
	GlyphC     byte = 'c'
)

var digitSegments = [10]byte{
	SegA | SegB | SegC | SegD | SegE | SegF,
	SegB | SegC,
	SegA | SegB | SegD | SegE | SegG,
	SegA | SegB | SegC | SegD | SegG,
	SegF | SegG | SegB | SegC,
	SegA | SegF | SegG | SegC | SegD,
	SegA | SegF | SegG | SegE | SegC | SegD,
	SegA | SegB | SegC,
	SegA | SegB | SegC | SegD | SegE | SegF | SegG,
	SegA | SegB | SegC | SegD | SegF | SegG,
}

// Encode returns the segment pattern for glyph, which is either a digit value
// 0-9 or one of the Glyph constants. Unknown glyphs render blank.
func Encode(glyph byte, decimal bool) byte {
	var segments byte
	switch {
	case glyph < 10:
		segments = digitSegments[glyph]
	case glyph == GlyphMinus:
		segments = SegG
	case glyph == GlyphC:
		segments = SegG | SegE | SegD
	}
	if decimal {
		segments |= SegDP
	}
	return segments
}

// decode maps a segment pattern back to a printable character.
func decode(segments byte) (rune, bool) {
	dp := segments&SegDP != 0
	segments &^= SegDP
	switch segments {
	case 0:
		return ' ', dp
	case SegG:
		return '-', dp
	case SegG | SegE | SegD:
		return 'c', dp
	}
	for d, s := range digitSegments {
		if s == segments {
			return rune('0' + d), dp
		}
	}
	return '?', dp
}
