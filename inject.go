package mindmap

// Synthetic input. Each Inject call queues whole Input frames in screen
// coordinates; Tick consumes one per frame instead of polling Ebitengine,
// so scripted sessions go through exactly the same code path as a mouse.

func (e *Editor) enqueue(in Input) {
	e.lastInject = in.Cursor
	e.injectQueue = append(e.injectQueue, in)
}

func (e *Editor) buttonFrame(x, y float64, b MouseButton, down bool, mods KeyModifiers) Input {
	in := Input{Cursor: Vec2{x, y}, Mods: mods}
	in.Buttons[b] = down
	return in
}

// InjectPress queues a left-button press at the given screen coordinates.
func (e *Editor) InjectPress(x, y float64) {
	e.enqueue(e.buttonFrame(x, y, MouseButtonLeft, true, 0))
}

// InjectMove queues a pointer move with the left button held down. Use it
// between InjectPress and InjectRelease to simulate a drag.
func (e *Editor) InjectMove(x, y float64) {
	e.enqueue(e.buttonFrame(x, y, MouseButtonLeft, true, 0))
}

// InjectHover queues a pointer move with no buttons held.
func (e *Editor) InjectHover(x, y float64) {
	e.enqueue(Input{Cursor: Vec2{x, y}})
}

// InjectRelease queues a left-button release at the given screen coordinates.
func (e *Editor) InjectRelease(x, y float64) {
	e.enqueue(e.buttonFrame(x, y, MouseButtonLeft, false, 0))
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (e *Editor) InjectClick(x, y float64) {
	e.InjectClickMods(x, y, 0)
}

// InjectClickMods is InjectClick with modifier keys held on both frames.
func (e *Editor) InjectClickMods(x, y float64, mods KeyModifiers) {
	e.enqueue(e.buttonFrame(x, y, MouseButtonLeft, true, mods))
	e.enqueue(e.buttonFrame(x, y, MouseButtonLeft, false, mods))
}

// InjectCtrlClick queues a click with the configured edit modifier held.
func (e *Editor) InjectCtrlClick(x, y float64) {
	e.InjectClickMods(x, y, e.opts.EditModifier)
}

// InjectRightClick queues a right-button press and release.
func (e *Editor) InjectRightClick(x, y float64) {
	e.enqueue(e.buttonFrame(x, y, MouseButtonRight, true, 0))
	e.enqueue(e.buttonFrame(x, y, MouseButtonRight, false, 0))
}

// InjectDrag queues a full left-button drag: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). Minimum frames is 2 (press + release).
func (e *Editor) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	e.InjectDragMods(fromX, fromY, toX, toY, frames, 0)
}

// InjectDragMods is InjectDrag with modifier keys held throughout, for
// example ModShift to drop a node onto a new parent.
func (e *Editor) InjectDragMods(fromX, fromY, toX, toY float64, frames int, mods KeyModifiers) {
	if frames < 2 {
		frames = 2
	}
	e.enqueue(e.buttonFrame(fromX, fromY, MouseButtonLeft, true, mods))
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		e.enqueue(e.buttonFrame(x, y, MouseButtonLeft, true, mods))
	}
	e.enqueue(e.buttonFrame(toX, toY, MouseButtonLeft, false, mods))
}

// InjectType queues one frame carrying s as typed characters.
func (e *Editor) InjectType(s string) {
	e.enqueue(Input{Cursor: e.lastInject, Chars: []rune(s)})
}

// InjectKey queues one frame in which k goes down.
func (e *Editor) InjectKey(k Key) {
	in := Input{Cursor: e.lastInject}
	in.Keys[k] = true
	e.enqueue(in)
}

// InjectWheel queues a wheel scroll of the given notches at a screen point.
func (e *Editor) InjectWheel(x, y, notches float64) {
	e.enqueue(Input{Cursor: Vec2{x, y}, Wheel: notches})
}

// Pending returns the number of queued synthetic frames.
func (e *Editor) Pending() int {
	return len(e.injectQueue)
}

// nextInjected pops the next queued frame. Reports false when the queue is
// empty and live input should be polled.
func (e *Editor) nextInjected() (Input, bool) {
	if len(e.injectQueue) == 0 {
		return Input{}, false
	}
	in := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue[len(e.injectQueue)-1] = Input{}
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]
	return in, true
}

// Flush runs Update for every queued frame without polling Ebitengine,
// stepping the attached test runner between frames. Useful in tests and
// headless replays.
func (e *Editor) Flush() {
	for {
		if e.testRunner != nil {
			e.testRunner.step(e)
		}
		in, ok := e.nextInjected()
		if !ok {
			if e.testRunner == nil || e.testRunner.Done() {
				return
			}
			in = Input{Cursor: e.lastInject}
		}
		e.Update(in)
	}
}
