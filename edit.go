package mindmap

import (
	"strings"
	"unicode"
)

// DefaultMaxTextLength bounds the inline edit buffer, in runes.
const DefaultMaxTextLength = 64

// EditState is the editor's inline-edit state: exactly one of Idle or
// Editing. Holding a single value makes "one edit at a time" structural.
type EditState interface {
	isEditState()
}

// Idle means no node is being edited.
type Idle struct{}

// Editing means Node's label is being typed into Buffer. The node's Text is
// untouched until the edit commits.
type Editing struct {
	Node   NodeID
	Buffer *TextBuffer
}

func (Idle) isEditState()    {}
func (Editing) isEditState() {}

// TextBuffer is a bounded rune buffer for inline editing.
type TextBuffer struct {
	runes []rune
	max   int
}

// NewTextBuffer returns a buffer holding initial, truncated to limit runes.
// Line breaks in initial are kept so multi-line labels survive an edit;
// other control characters are dropped. A limit of zero or less selects
// DefaultMaxTextLength.
func NewTextBuffer(initial string, limit int) *TextBuffer {
	if limit <= 0 {
		limit = DefaultMaxTextLength
	}
	b := &TextBuffer{max: limit}
	for _, r := range strings.ReplaceAll(initial, "\r\n", "\n") {
		if len(b.runes) >= b.max {
			break
		}
		if r == '\n' {
			b.runes = append(b.runes, r)
			continue
		}
		b.Insert(r)
	}
	return b
}

// Insert appends r. Control characters and input past the limit are
// dropped; reports whether r was appended.
func (b *TextBuffer) Insert(r rune) bool {
	if len(b.runes) >= b.max || unicode.IsControl(r) {
		return false
	}
	b.runes = append(b.runes, r)
	return true
}

// Backspace removes the last rune. No-op on an empty buffer.
func (b *TextBuffer) Backspace() {
	if len(b.runes) > 0 {
		b.runes = b.runes[:len(b.runes)-1]
	}
}

// Len returns the buffer length in runes.
func (b *TextBuffer) Len() int {
	return len(b.runes)
}

// Max returns the buffer capacity in runes.
func (b *TextBuffer) Max() int {
	return b.max
}

func (b *TextBuffer) String() string {
	return string(b.runes)
}
