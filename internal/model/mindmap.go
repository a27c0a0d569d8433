package model

// MindMap is the whole persisted unit: a title plus an ordered bubble
// sequence. Bubble order is the document's reading order and is stored
// exactly as-is, never re-sorted.
type MindMap struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Bubbles []Bubble `json:"bubbles"`
}

type Bubble struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Importance string    `json:"importance"`
	Keywords   []Keyword `json:"keywords"`
}

type Keyword struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// MindMapInfo is the list-view projection of a stored record.
type MindMapInfo struct {
	ID    string `json:"id" db:"id"`
	Title string `json:"title" db:"title"`
	Ctime int64  `json:"ctime" db:"ctime"`
	Mtime int64  `json:"mtime" db:"mtime"`
}

// Clone returns a deep copy. Callers that hand a MindMap across a cache
// boundary must clone so later mutations cannot alias the cached value.
func (m *MindMap) Clone() *MindMap {
	if m == nil {
		return nil
	}
	out := &MindMap{ID: m.ID, Title: m.Title}
	if m.Bubbles != nil {
		out.Bubbles = make([]Bubble, len(m.Bubbles))
		for i, b := range m.Bubbles {
			nb := b
			if b.Keywords != nil {
				nb.Keywords = make([]Keyword, len(b.Keywords))
				copy(nb.Keywords, b.Keywords)
			}
			out.Bubbles[i] = nb
		}
	}
	return out
}
