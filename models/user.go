package models

import (
	"time"
)

const UsersCollection = "users"

// User is an admin account. Guests never authenticate.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey" bson:"id"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null" bson:"email"`
	PasswordHash string    `json:"-" gorm:"not null" bson:"password_hash"`
	IsAdmin      bool      `json:"is_admin" bson:"is_admin"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

func (User) TableName() string { return UsersCollection }

// UserInfo is the user view returned to clients, without the password digest.
type UserInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToUserInfo() UserInfo {
	return UserInfo{
		ID:        u.ID,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}
