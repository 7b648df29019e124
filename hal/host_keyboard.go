package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// Inject feeds a synthetic event, bypassing the window poll. Used by the
// headless stdin reader.
func (k *hostKeyboard) Inject(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

// keyTable maps ebiten physical keys to HAL key codes. Modifier state is
// deliberately ignored: the emulated keyboard reports unshifted scancodes
// only, matching the decoder's fixed layout.
var keyTable = map[ebiten.Key]KeyCode{
	ebiten.KeyEscape:       KeyEscape,
	ebiten.KeyDigit1:       Key1,
	ebiten.KeyDigit2:       Key2,
	ebiten.KeyDigit3:       Key3,
	ebiten.KeyDigit4:       Key4,
	ebiten.KeyDigit5:       Key5,
	ebiten.KeyDigit6:       Key6,
	ebiten.KeyDigit7:       Key7,
	ebiten.KeyDigit8:       Key8,
	ebiten.KeyDigit9:       Key9,
	ebiten.KeyDigit0:       Key0,
	ebiten.KeyMinus:        KeyMinus,
	ebiten.KeyEqual:        KeyEqual,
	ebiten.KeyBackspace:    KeyBackspace,
	ebiten.KeyTab:          KeyTab,
	ebiten.KeyQ:            KeyQ,
	ebiten.KeyW:            KeyW,
	ebiten.KeyE:            KeyE,
	ebiten.KeyR:            KeyR,
	ebiten.KeyT:            KeyT,
	ebiten.KeyY:            KeyY,
	ebiten.KeyU:            KeyU,
	ebiten.KeyI:            KeyI,
	ebiten.KeyO:            KeyO,
	ebiten.KeyP:            KeyP,
	ebiten.KeyBracketLeft:  KeyLeftBracket,
	ebiten.KeyBracketRight: KeyRightBracket,
	ebiten.KeyEnter:        KeyEnter,
	ebiten.KeyA:            KeyA,
	ebiten.KeyS:            KeyS,
	ebiten.KeyD:            KeyD,
	ebiten.KeyF:            KeyF,
	ebiten.KeyG:            KeyG,
	ebiten.KeyH:            KeyH,
	ebiten.KeyJ:            KeyJ,
	ebiten.KeyK:            KeyK,
	ebiten.KeyL:            KeyL,
	ebiten.KeySemicolon:    KeySemicolon,
	ebiten.KeyQuote:        KeyApostrophe,
	ebiten.KeyBackquote:    KeyGrave,
	ebiten.KeyBackslash:    KeyBackslash,
	ebiten.KeyZ:            KeyZ,
	ebiten.KeyX:            KeyX,
	ebiten.KeyC:            KeyC,
	ebiten.KeyV:            KeyV,
	ebiten.KeyB:            KeyB,
	ebiten.KeyN:            KeyN,
	ebiten.KeyM:            KeyM,
	ebiten.KeyComma:        KeyComma,
	ebiten.KeyPeriod:       KeyPeriod,
	ebiten.KeySlash:        KeySlash,
	ebiten.KeySpace:        KeySpace,
	ebiten.KeyF1:           KeyF1,
	ebiten.KeyF2:           KeyF2,
	ebiten.KeyF3:           KeyF3,
}

func (k *hostKeyboard) poll() {
	emit := func(code KeyCode, press bool) {
		select {
		case k.ch <- KeyEvent{Code: code, Press: press}:
		default:
		}
	}

	for key, code := range keyTable {
		if inpututil.IsKeyJustPressed(key) {
			emit(code, true)
		}
		if inpututil.IsKeyJustReleased(key) {
			emit(code, false)
		}
	}
}
