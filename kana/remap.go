package kana

// ToKatakana maps a hiragana code onto the katakana block. Codes outside
// the hiragana range are returned unchanged.
func ToKatakana(c Code) Code {
	hi, lo := c.High(), c.Low()
	if hi < 0x82 || lo < 0x9F || lo > 0xF1 {
		return c
	}
	if lo <= 0xDD {
		lo -= 0x5F
	} else {
		lo -= 0x5E
	}
	return FromBytes(0x83, lo)
}

// ToHiragana is the inverse of ToKatakana.
func ToHiragana(c Code) Code {
	hi, lo := c.High(), c.Low()
	if hi != 0x83 || lo < 0x40 || lo > 0x93 {
		return c
	}
	if lo <= 0x7E {
		lo += 0x5F
	} else {
		lo += 0x5E
	}
	return FromBytes(0x82, lo)
}

// RemapKatakana rewrites every hiragana code in buf to katakana, in place.
// buf holds double-byte codes; single bytes below 0x80 are skipped.
func RemapKatakana(buf []byte) {
	remap(buf, ToKatakana)
}

// RemapHiragana rewrites every katakana code in buf to hiragana, in place.
func RemapHiragana(buf []byte) {
	remap(buf, ToHiragana)
}

func remap(buf []byte, fn func(Code) Code) {
	for i := 0; i < len(buf); {
		if buf[i] < 0x80 || i+1 >= len(buf) {
			i++
			continue
		}
		c := fn(FromBytes(buf[i], buf[i+1]))
		buf[i], buf[i+1] = c.High(), c.Low()
		i += 2
	}
}
