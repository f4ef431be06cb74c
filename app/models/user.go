package models

import (
	"time"
)

type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Username    string     `gorm:"size:80;not null;uniqueIndex" json:"username"`
	Email       string     `gorm:"size:120;not null;uniqueIndex" json:"email"`
	Password    string     `gorm:"size:255;not null" json:"-"`
	FirstName   string     `gorm:"size:50" json:"first_name"`
	LastName    string     `gorm:"size:50" json:"last_name"`
	Phone       string     `gorm:"size:20" json:"phone,omitempty"`
	Role        Role       `gorm:"size:20;default:'customer';not null" json:"role"`
	IsActive    bool       `gorm:"not null" json:"is_active"`
	IsVerified  bool       `gorm:"default:false;not null" json:"is_verified"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	return u.FirstName + " " + u.LastName
}
