package model

// Item is the persisted record of a todo entry.
// ID is assigned by the storage backend on create and never changes.
type Item struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Done  bool   `json:"done" yaml:"done"`
}
