package domain

// Document is one version of a text buffer. A Document value never changes;
// every edit produces a new Version.
type Document struct {
	Text    string
	Version uint64
}

// Len returns the length of the text in bytes.
func (d Document) Len() int {
	return len(d.Text)
}

// ChangeEvent describes one coalesced content change of an editable
// document: the range [From, To) of the previous version was replaced by
// Inserted, producing Version with Length bytes. Selection-only changes never
// produce a ChangeEvent.
type ChangeEvent struct {
	Version  uint64
	From     int
	To       int
	Inserted string
	Length   int
}

// Edit replaces the byte range [From, To) with Insert.
type Edit struct {
	From   int
	To     int
	Insert string
}

// IsNoop reports whether applying the edit leaves the text unchanged.
func (e Edit) IsNoop() bool {
	return e.From == e.To && e.Insert == ""
}

// Selection is a cursor (Anchor == Head) or a selected byte range.
type Selection struct {
	Anchor int
	Head   int
}

// Empty reports whether the selection is a plain cursor.
func (s Selection) Empty() bool {
	return s.Anchor == s.Head
}

// Range returns the selection as an ordered [from, to) pair.
func (s Selection) Range() (from, to int) {
	if s.Anchor <= s.Head {
		return s.Anchor, s.Head
	}
	return s.Head, s.Anchor
}
