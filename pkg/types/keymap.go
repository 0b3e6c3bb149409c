package types

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

// Modifiers is the modifier mask of a key chord.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModAlt
	ModShift
)

// KeyChord is a key code plus the modifiers held while pressing it.
// Code is either a named key ("enter", "f5", "pgdown") or a single character.
type KeyChord struct {
	Code string
	Mods Modifiers
}

// Well known chords used by the built-in verb table.
var (
	KeyEnter     = KeyChord{Code: "enter"}
	KeyAltEnter  = KeyChord{Code: "enter", Mods: ModAlt}
	KeyTab       = KeyChord{Code: "tab"}
	KeyBackTab   = KeyChord{Code: "tab", Mods: ModShift}
	KeyUp        = KeyChord{Code: "up"}
	KeyDown      = KeyChord{Code: "down"}
	KeyPageUp    = KeyChord{Code: "pgup"}
	KeyPageDown  = KeyChord{Code: "pgdown"}
	KeyCtrlLeft  = KeyChord{Code: "left", Mods: ModCtrl}
	KeyCtrlRight = KeyChord{Code: "right", Mods: ModCtrl}
	KeyF1        = KeyChord{Code: "f1"}
	KeyF5        = KeyChord{Code: "f5"}
)

var namedKeys = map[string]bool{
	"enter": true, "tab": true, "esc": true, "backspace": true, "delete": true,
	"insert": true, "up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pgup": true, "pgdown": true, "space": true,
	"f1": true, "f2": true, "f3": true, "f4": true, "f5": true, "f6": true,
	"f7": true, "f8": true, "f9": true, "f10": true, "f11": true, "f12": true,
}

var keyAliases = map[string]string{
	"return":    "enter",
	"escape":    "esc",
	"pageup":    "pgup",
	"page_up":   "pgup",
	"pagedown":  "pgdown",
	"page_down": "pgdown",
	"del":       "delete",
	"ins":       "insert",
}

// CtrlKey returns the chord for ctrl + the given character.
func CtrlKey(r rune) KeyChord {
	return KeyChord{Code: string(unicode.ToLower(r)), Mods: ModCtrl}
}

// AltKey returns the chord for alt + the given character.
func AltKey(r rune) KeyChord {
	return KeyChord{Code: string(r), Mods: ModAlt}
}

// ParseKey parses chords written like "ctrl-w", "alt-enter", "shift-tab",
// "f5" or "?". Both '-' and '+' are accepted as separators, so the
// strings produced by tea.KeyMsg.String() parse too.
func ParseKey(s string) (KeyChord, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return KeyChord{}, fmt.Errorf("empty key")
	}
	if utf8.RuneCountInString(s) == 1 {
		return KeyChord{Code: s}, nil
	}

	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '+' })
	if len(parts) == 0 {
		return KeyChord{}, fmt.Errorf("invalid key %q", s)
	}

	var chord KeyChord
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(mod) {
		case "ctrl", "control":
			chord.Mods |= ModCtrl
		case "alt", "meta":
			chord.Mods |= ModAlt
		case "shift":
			chord.Mods |= ModShift
		default:
			return KeyChord{}, fmt.Errorf("unknown modifier %q in key %q", mod, s)
		}
	}

	code := parts[len(parts)-1]
	if utf8.RuneCountInString(code) == 1 {
		if chord.Mods&ModCtrl != 0 {
			code = strings.ToLower(code)
		}
		chord.Code = code
		return chord, nil
	}

	code = strings.ToLower(code)
	if alias, ok := keyAliases[code]; ok {
		code = alias
	}
	if code == "backtab" {
		chord.Mods |= ModShift
		code = "tab"
	}
	if !namedKeys[code] {
		return KeyChord{}, fmt.Errorf("unknown key %q", s)
	}
	chord.Code = code
	return chord, nil
}

// MustParseKey is ParseKey for literal chords known to be valid.
func MustParseKey(s string) KeyChord {
	chord, err := ParseKey(s)
	if err != nil {
		panic(err)
	}
	return chord
}

func (k KeyChord) join(sep string) string {
	var sb strings.Builder
	if k.Mods&ModCtrl != 0 {
		sb.WriteString("ctrl" + sep)
	}
	if k.Mods&ModAlt != 0 {
		sb.WriteString("alt" + sep)
	}
	if k.Mods&ModShift != 0 {
		sb.WriteString("shift" + sep)
	}
	sb.WriteString(k.Code)
	return sb.String()
}

// String returns the canonical form, e.g. "ctrl-w".
func (k KeyChord) String() string {
	return k.join("-")
}

// TeaString returns the chord the way bubbletea names keys, e.g. "ctrl+w".
func (k KeyChord) TeaString() string {
	if k.Code == "space" && k.Mods == 0 {
		return " "
	}
	return k.join("+")
}

// ChordFromKeyMsg converts a bubbletea key event into a chord.
func ChordFromKeyMsg(msg tea.KeyMsg) KeyChord {
	switch msg.Type {
	case tea.KeyRunes:
		chord := KeyChord{Code: string(msg.Runes)}
		if msg.Alt {
			chord.Mods |= ModAlt
		}
		return chord
	case tea.KeySpace:
		chord := KeyChord{Code: "space"}
		if msg.Alt {
			chord.Mods |= ModAlt
		}
		return chord
	}
	chord, err := ParseKey(msg.String())
	if err != nil {
		return KeyChord{Code: msg.String()}
	}
	return chord
}
