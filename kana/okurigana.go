package kana

// IsClassifier reports whether b can close a verb headword as its
// conjugation-row letter. Classifier letters are plain ASCII.
func IsClassifier(b byte) bool {
	return b < 0x80
}

// MatchesOkurigana reports whether the kana c belongs to the conjugation
// row named by classifier (k, g, s, z/j, t, d, n, h, b, p, m, r, w, or a
// bare vowel i/u/e/o).
func MatchesOkurigana(classifier byte, c Code) bool {
	if c.High() != 0x82 {
		return false
	}
	lo := c.Low()
	odd := lo&1 == 1
	switch classifier {
	case 'k':
		return lo >= 0xA9 && lo <= 0xB1 && odd
	case 'g':
		return lo >= 0xAA && lo <= 0xB2 && !odd
	case 's':
		return lo >= 0xB3 && lo <= 0xBB && odd
	case 'z', 'j':
		return lo >= 0xB4 && lo <= 0xBC && !odd
	case 't':
		switch lo {
		case 0xBD, 0xBF, 0xC1, 0xC2, 0xC4, 0xC6:
			return true
		}
	case 'd':
		switch lo {
		case 0xBE, 0xC0, 0xC3, 0xC5, 0xC7:
			return true
		}
	case 'n':
		return (lo >= 0xC8 && lo <= 0xCC) || lo == 0xF1
	case 'h':
		return lo >= 0xCD && lo <= 0xD1
	case 'b':
		return lo >= 0xD2 && lo <= 0xD6
	case 'p':
		return lo >= 0xD7 && lo <= 0xDB
	case 'm':
		return lo >= 0xDC && lo <= 0xE0
	case 'r':
		return lo >= 0xE7 && lo <= 0xEB
	case 'w':
		return lo == 0xED || lo == 0xF0 || lo == 0xA4
	case 'i':
		return lo == 0xA2
	case 'u':
		return lo == 0xA4
	case 'e':
		return lo == 0xA6
	case 'o':
		return lo == 0xA8
	}
	return false
}
