package model

import "time"

// Assignment is a saved question/answer pair. UserID is never serialized;
// the struct doubles as the public projection returned to clients.
type Assignment struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	UserID    int64     `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
