package ime

// Event is the outcome of one processed key.
type Event uint8

const (
	EventNone Event = iota
	EventConfirmed
	EventCancelled
	EventModeChanged
	EventDeactivated
	EventKeyPassthrough
)

func (e Event) String() string {
	switch e {
	case EventConfirmed:
		return "confirmed"
	case EventCancelled:
		return "cancelled"
	case EventModeChanged:
		return "mode-changed"
	case EventDeactivated:
		return "deactivated"
	case EventKeyPassthrough:
		return "key-passthrough"
	}
	return "none"
}

// Mode is the input mode.
type Mode uint8

const (
	Hiragana Mode = iota
	Katakana
	FullwidthAlnum
)

func (m Mode) String() string {
	switch m {
	case Katakana:
		return "katakana"
	case FullwidthAlnum:
		return "fullwidth"
	}
	return "hiragana"
}

// Label returns the status indicator of m as Shift-JIS bytes:
// [あ], [ア] or [Ａ].
func (m Mode) Label() []byte {
	switch m {
	case Katakana:
		return []byte{'[', 0x83, 0x41, ']'}
	case FullwidthAlnum:
		return []byte{'[', 0x82, 0x60, ']'}
	}
	return []byte{'[', 0x82, 0xA0, ']'}
}

// Control keys understood by ProcessKey.
const (
	KeyBackspace byte = 8
	KeyReturn    byte = 13
	KeyEscape    byte = 27
	KeyDelete    byte = 20 // backspace on the C64 keyboard
	KeySpace     byte = 32
	KeyPrevious  byte = 160 // shift+space, previous candidate
)
