package entity

import "time"

// Note is a private text note owned by exactly one user. Every read and
// write is scoped by the owner; a note never leaks across accounts.
type Note struct {
	ID        int64
	UserID    int64
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NoteListFilter narrows and pages a user's notes, newest first.
type NoteListFilter struct {
	Limit  int32
	Offset int32
}
