// Package model defines database models
package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:150;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Avatar       string     `gorm:"size:255" json:"avatar,omitempty"`
	RefreshToken *string    `gorm:"size:512" json:"-"`
	Confirmed    bool       `gorm:"default:false" json:"confirmed"`
	Role         string     `gorm:"size:20;default:user" json:"role"`
	ExpiresAt    *time.Time `json:"-"` // Unconfirmed accounts past this point get cleaned up
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Contacts []Contact `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
