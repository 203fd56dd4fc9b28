package models

import "time"

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleAuthor Role = "author"
)

func (r Role) Valid() bool { return r == RoleAdmin || r == RoleAuthor }

// UserStatus is the closed set of account states.
type UserStatus string

const (
	UserActive UserStatus = "active"
	UserBanned UserStatus = "banned"
)

func (s UserStatus) Valid() bool { return s == UserActive || s == UserBanned }

// UserModel represents an author or admin account.
// Password is bcrypt-hashed by the auth service and never serialized outward.
type UserModel struct {
	Base
	Name     string     `json:"name"   gorm:"not null"`
	Email    string     `json:"email"  gorm:"uniqueIndex;not null"`
	Phone    string     `json:"phone"  gorm:"uniqueIndex;not null"`
	Password string     `json:"-"      gorm:"not null"`
	Desc     string     `json:"desc"`
	Image    string     `json:"image"`
	Role     Role       `json:"role"   gorm:"type:varchar(16);default:author;index"`
	Status   UserStatus `json:"status" gorm:"type:varchar(16);default:active"`
	Joined   time.Time  `json:"joined" gorm:"autoCreateTime"`
}

func (UserModel) TableName() string { return "users" }
