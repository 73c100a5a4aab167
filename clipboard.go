package mindmap

import (
	"strings"

	"github.com/atotto/clipboard"
)

// System clipboard access. Tests swap these out; on Linux the real ones need
// xclip, xsel or wl-clipboard and fail quietly without them.
var (
	clipboardRead  = clipboard.ReadAll
	clipboardWrite = clipboard.WriteAll
)

// labelBreaks flattens pasted multi-line text onto one label line.
var labelBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

// paste appends the clipboard text to buf, up to its limit.
func (e *Editor) paste(buf *TextBuffer) {
	s, err := clipboardRead()
	if err != nil {
		logger().Debug("clipboard read failed", "err", err)
		return
	}
	for _, r := range labelBreaks.Replace(s) {
		if buf.Len() >= buf.Max() {
			break
		}
		buf.Insert(r)
	}
}

// copyText puts s on the clipboard.
func (e *Editor) copyText(s string) {
	if err := clipboardWrite(s); err != nil {
		logger().Debug("clipboard write failed", "err", err)
	}
}

// CopyLabel copies the label of id to the system clipboard. Reports false
// when id is not a live node.
func (e *Editor) CopyLabel(id NodeID) bool {
	n := e.graph.Node(id)
	if n == nil {
		return false
	}
	e.copyText(n.Text)
	return true
}
