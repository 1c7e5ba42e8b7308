package keys

import "github.com/micmonay/keybd_event"

// defaultCodes maps canonical key names to injector codes.
var defaultCodes = map[string]int{
	"A": keybd_event.VK_A, "B": keybd_event.VK_B, "C": keybd_event.VK_C,
	"D": keybd_event.VK_D, "E": keybd_event.VK_E, "F": keybd_event.VK_F,
	"G": keybd_event.VK_G, "H": keybd_event.VK_H, "I": keybd_event.VK_I,
	"J": keybd_event.VK_J, "K": keybd_event.VK_K, "L": keybd_event.VK_L,
	"M": keybd_event.VK_M, "N": keybd_event.VK_N, "O": keybd_event.VK_O,
	"P": keybd_event.VK_P, "Q": keybd_event.VK_Q, "R": keybd_event.VK_R,
	"S": keybd_event.VK_S, "T": keybd_event.VK_T, "U": keybd_event.VK_U,
	"V": keybd_event.VK_V, "W": keybd_event.VK_W, "X": keybd_event.VK_X,
	"Y": keybd_event.VK_Y, "Z": keybd_event.VK_Z,

	"0": keybd_event.VK_0, "1": keybd_event.VK_1, "2": keybd_event.VK_2,
	"3": keybd_event.VK_3, "4": keybd_event.VK_4, "5": keybd_event.VK_5,
	"6": keybd_event.VK_6, "7": keybd_event.VK_7, "8": keybd_event.VK_8,
	"9": keybd_event.VK_9,

	"F1": keybd_event.VK_F1, "F2": keybd_event.VK_F2, "F3": keybd_event.VK_F3,
	"F4": keybd_event.VK_F4, "F5": keybd_event.VK_F5, "F6": keybd_event.VK_F6,
	"F7": keybd_event.VK_F7, "F8": keybd_event.VK_F8, "F9": keybd_event.VK_F9,
	"F10": keybd_event.VK_F10, "F11": keybd_event.VK_F11, "F12": keybd_event.VK_F12,

	"KP0": keybd_event.VK_KP0, "KP1": keybd_event.VK_KP1, "KP2": keybd_event.VK_KP2,
	"KP3": keybd_event.VK_KP3, "KP4": keybd_event.VK_KP4, "KP5": keybd_event.VK_KP5,
	"KP6": keybd_event.VK_KP6, "KP7": keybd_event.VK_KP7, "KP8": keybd_event.VK_KP8,
	"KP9": keybd_event.VK_KP9,

	"ESC":       keybd_event.VK_ESC,
	"ENTER":     keybd_event.VK_ENTER,
	"SPACE":     keybd_event.VK_SPACE,
	"TAB":       keybd_event.VK_TAB,
	"BACKSPACE": keybd_event.VK_BACKSPACE,
	"UP":        keybd_event.VK_UP,
	"DOWN":      keybd_event.VK_DOWN,
	"LEFT":      keybd_event.VK_LEFT,
	"RIGHT":     keybd_event.VK_RIGHT,
	"HOME":      keybd_event.VK_HOME,
	"END":       keybd_event.VK_END,
	"PAGEUP":    keybd_event.VK_PAGEUP,
	"PAGEDOWN":  keybd_event.VK_PAGEDOWN,
	"INSERT":    keybd_event.VK_INSERT,
	"DELETE":    keybd_event.VK_DELETE,
}

// aliases accepts the Windows virtual-key spellings used by existing menu
// files.
var aliases = map[string]string{
	"RETURN":  "ENTER",
	"ESCAPE":  "ESC",
	"BACK":    "BACKSPACE",
	"PRIOR":   "PAGEUP",
	"NEXT":    "PAGEDOWN",
	"NUMPAD0": "KP0",
	"NUMPAD1": "KP1",
	"NUMPAD2": "KP2",
	"NUMPAD3": "KP3",
	"NUMPAD4": "KP4",
	"NUMPAD5": "KP5",
	"NUMPAD6": "KP6",
	"NUMPAD7": "KP7",
	"NUMPAD8": "KP8",
	"NUMPAD9": "KP9",
}
