package display

// NoKey is returned by AnyPressed when nothing is held.
const NoKey = 0x10

// Keys is the pressed state of the hex keypad 0-F.
type Keys struct {
	pressed [16]bool
}

func (k *Keys) Set(key uint8, pressed bool) {
	if int(key) < len(k.pressed) {
		k.pressed[key] = pressed
	}
}

func (k *Keys) Reset() {
	k.pressed = [16]bool{}
}

// IsPressed reports false for values outside the keypad.
func (k *Keys) IsPressed(key uint8) bool {
	if int(key) >= len(k.pressed) {
		return false
	}
	return k.pressed[key]
}

// AnyPressed returns the lowest pressed key in keypad scan order.
func (k *Keys) AnyPressed() (uint8, bool) {
	for _, key := range ScanOrder {
		if k.pressed[key] {
			return key, true
		}
	}
	return NoKey, false
}

// ScanOrder lists the keypad in the COSMAC VIP layout, row by row:
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
var ScanOrder = [16]uint8{
	0x1, 0x2, 0x3, 0xC,
	0x4, 0x5, 0x6, 0xD,
	0x7, 0x8, 0x9, 0xE,
	0xA, 0x0, 0xB, 0xF,
}

// QWERTY maps the left block of a QWERTY keyboard onto the keypad,
// in ScanOrder.
var QWERTY = [16]rune{
	'1', '2', '3', '4',
	'q', 'w', 'e', 'r',
	'a', 's', 'd', 'f',
	'z', 'x', 'c', 'v',
}
