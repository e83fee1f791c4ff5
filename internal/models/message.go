package models

import "time"

// Message is a guestbook entry. Both text fields are stored already
// sanitized; the forbidden-substring set never reaches the database.
type Message struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthorName string    `gorm:"column:author_name;size:50;not null" json:"author_name"`
	Body       string    `gorm:"column:body;size:500;not null" json:"body"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

func (Message) TableName() string {
	return "messages"
}
