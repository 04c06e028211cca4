package model

import "time"

type Contact struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"-"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	Surname   string    `gorm:"size:50;not null" json:"surname"`
	Email     string    `gorm:"size:150" json:"email"`
	Phone     string    `gorm:"size:30" json:"phone"`
	Birthday  time.Time `gorm:"type:date" json:"birthday"`
	Notes     string    `gorm:"size:500" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
