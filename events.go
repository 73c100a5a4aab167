package mindmap

// GraphEvent describes one structural or editing change made by the editor.
type GraphEvent struct {
	Type EventType
	Node NodeID
	// Parent is the new parent for NodeAdded and NodeReparented, and the
	// former parent for EdgeDetached and NodeDeleted.
	Parent NodeID
	// Previous is the former parent for NodeReparented.
	Previous NodeID
	// Removed counts the nodes deleted by NodeDeleted (the subtree size).
	Removed int
	// Text is the committed label for EditCommitted and the new node's
	// label for NodeAdded.
	Text string
	// Position is the node's world position after NodeAdded or NodeMoved.
	Position Vec2
}

// EventSink receives every GraphEvent the editor emits. The ecs package
// provides a Donburi-backed implementation.
type EventSink interface {
	EmitEvent(event GraphEvent)
}

type eventHandler struct {
	id uint32
	fn func(GraphEvent)
}

type handlerRegistry struct {
	handlers []eventHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered event callback.
type CallbackHandle struct {
	id  uint32
	reg *handlerRegistry
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.handlers = s[:len(s)-1]
			return
		}
	}
}

// On registers a callback for every graph event.
func (e *Editor) On(fn func(GraphEvent)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.handlers = append(e.handlers.handlers, eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers}
}

// SetEventSink sets the optional event bridge (e.g. ecs.NewDonburiSink).
func (e *Editor) SetEventSink(sink EventSink) {
	e.sink = sink
}

// emit delivers ev to the sink first, so callbacks may drain it.
func (e *Editor) emit(ev GraphEvent) {
	if e.sink != nil {
		e.sink.EmitEvent(ev)
	}
	for _, h := range e.handlers.handlers {
		h.fn(ev)
	}
}
