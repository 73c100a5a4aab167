package mindmap

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is one frame's pointer and keyboard snapshot. Buttons holds the
// held state; the editor derives press and release edges itself by
// comparing against the previous frame, so injected input only has to say
// which buttons are down.
type Input struct {
	Cursor  Vec2 // screen space
	Buttons [numMouseButtons]bool
	Wheel   float64 // vertical wheel notches, positive zooms in
	Mods    KeyModifiers
	Keys    [numKeys]bool // keys that went down this frame
	Chars   []rune        // text typed this frame
}

// Held reports whether button b is down.
func (in *Input) Held(b MouseButton) bool {
	return in.Buttons[b]
}

// KeyPressed reports whether k went down this frame.
func (in *Input) KeyPressed(k Key) bool {
	return in.Keys[k]
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// keyRepeat reports whether a held key should fire this tick: once on the
// first frame, then every few frames after a short delay.
func keyRepeat(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= 30 && d%3 == 0)
}

// PollInput reads the live mouse and keyboard state from Ebitengine.
// charBuf is reused for typed characters to avoid a per-frame allocation.
func PollInput(charBuf []rune) Input {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()

	in := Input{
		Cursor: Vec2{float64(mx), float64(my)},
		Wheel:  wy,
		Mods:   readModifiers(),
		Chars:  ebiten.AppendInputChars(charBuf[:0]),
	}
	in.Buttons[MouseButtonLeft] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	in.Buttons[MouseButtonRight] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	in.Buttons[MouseButtonMiddle] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	in.Keys[KeyEnter] = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)
	in.Keys[KeyBackspace] = keyRepeat(ebiten.KeyBackspace)
	in.Keys[KeyEscape] = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	in.Keys[KeyReset] = inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyHome)

	if in.Mods&(ModCtrl|ModMeta) != 0 {
		in.Keys[KeyCopy] = inpututil.IsKeyJustPressed(ebiten.KeyC)
		in.Keys[KeyPaste] = inpututil.IsKeyJustPressed(ebiten.KeyV)
		in.Keys[KeyReset] = false
	}
	return in
}
