package dto

import "time"

type TaskItemInput struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

type CreateTaskInput struct {
	Title string          `json:"title"`
	Color string          `json:"color"`
	Items []TaskItemInput `json:"items"`
	Tags  []string        `json:"tags"`
}

type UpdateTaskInput struct {
	Title string          `json:"title"`
	Color string          `json:"color"`
	Items []TaskItemInput `json:"items"`
	Tags  []string        `json:"tags"`
}

type TaskItemOutput struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

type TagOutput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type TaskOutput struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Color     string           `json:"color"`
	Items     []TaskItemOutput `json:"items"`
	Tags      []TagOutput      `json:"tags"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type CreateTagInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type DeleteTagsInput struct {
	TagIDs []string `json:"tag_ids"`
}
