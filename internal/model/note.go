package model

import "time"

type Note struct {
	ID        int64     `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	IsPinned  bool      `json:"isPinned"`
	UserID    int64     `json:"userId"`
	CreatedOn time.Time `json:"createdOn"`
}
