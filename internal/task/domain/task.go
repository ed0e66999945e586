package domain

import "time"

type Task struct {
	ID        string
	Title     string
	Color     string
	AuthorID  string
	Items     []TaskItem
	Tags      []Tag
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TaskItem struct {
	ID       string
	TaskID   string
	Name     string
	Checked  bool
	Position int
}

type Tag struct {
	ID     string
	Name   string
	Color  string
	UserID string
}
