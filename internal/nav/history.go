package nav

// History is the session list of address hashes with a cursor, the
// in-process counterpart of the browser history stack.
type History struct {
	entries []string
	cursor  int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{cursor: -1}
}

// Push records hash after the cursor, dropping forward entries. Pushing the
// current entry again is ignored.
func (h *History) Push(hash string) {
	if cur, ok := h.Current(); ok && cur == hash {
		return
	}
	h.entries = append(h.entries[:h.cursor+1], hash)
	h.cursor = len(h.entries) - 1
}

// Replace overwrites the current entry, or records the first one.
func (h *History) Replace(hash string) {
	if h.cursor < 0 {
		h.Push(hash)
		return
	}
	h.entries[h.cursor] = hash
}

// Current returns the entry under the cursor.
func (h *History) Current() (string, bool) {
	if h.cursor < 0 || h.cursor >= len(h.entries) {
		return "", false
	}
	return h.entries[h.cursor], true
}

// Back moves the cursor one entry back.
func (h *History) Back() (string, bool) {
	if !h.CanBack() {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Forward moves the cursor one entry forward.
func (h *History) Forward() (string, bool) {
	if !h.CanForward() {
		return "", false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

func (h *History) CanBack() bool    { return h.cursor > 0 }
func (h *History) CanForward() bool { return h.cursor >= 0 && h.cursor < len(h.entries)-1 }

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Entries returns a copy of all entries.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}
