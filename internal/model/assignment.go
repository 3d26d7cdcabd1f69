package model

import "time"

// Assignment records are immutable once created and are stored as a JSON
// array under the "assignments" key of the key-value store.
type Assignment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Deadline  time.Time `json:"deadline"`
	FileName  string    `json:"file_name"`
	FileRef   string    `json:"file_ref"`
	CreatedAt time.Time `json:"created_at"`
}
