package models

import "time"

// Image is a gallery record. Filename is the only foreign key into the
// filesystem: whenever the row exists, uploads/<filename> must exist too.
type Image struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Filename  string    `gorm:"column:filename;size:255;not null;uniqueIndex" json:"filename"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Image) TableName() string {
	return "images"
}
