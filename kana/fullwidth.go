package kana

var fullwidthPunct = map[byte]Code{
	' ': 0x8140, '!': 0x8149, '"': 0x8168, '#': 0x8194, '$': 0x8190,
	'%': 0x8193, '&': 0x8195, '\'': 0x8166, '(': 0x8169, ')': 0x816A,
	'*': 0x8196, '+': 0x817B, ',': 0x8143, '-': 0x817C, '.': 0x8144,
	'/': 0x815E, ':': 0x8146, ';': 0x8147, '<': 0x8183, '=': 0x8181,
	'>': 0x8184, '?': 0x8148, '@': 0x8197, '[': 0x816D, '\\': 0x815F,
	']': 0x816E, '^': 0x814F, '_': 0x8151, '`': 0x814D, '{': 0x816F,
	'|': 0x8162, '}': 0x8170, '~': 0x8160,
}

// Fullwidth returns the double-byte full-width form of a printable ASCII
// character.
func Fullwidth(ch byte) (Code, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return 0x824F + Code(ch-'0'), true
	case ch >= 'A' && ch <= 'Z':
		return 0x8260 + Code(ch-'A'), true
	case ch >= 'a' && ch <= 'z':
		return 0x8281 + Code(ch-'a'), true
	}
	c, ok := fullwidthPunct[ch]
	return c, ok
}
