package model

// MindMapVersion is a snapshot of the serialized document taken on save.
// Data holds the full JSON record as persisted at that version.
type MindMapVersion struct {
	ID        string `json:"id" db:"id"`
	MindMapID string `json:"mindmap_id" db:"mindmap_id"`
	Version   int    `json:"version" db:"version"`
	Title     string `json:"title" db:"title"`
	Data      string `json:"data" db:"data"`
	Ctime     int64  `json:"ctime" db:"ctime"`
}
