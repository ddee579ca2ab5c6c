package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleLearner    = "learner"
	RoleReviewer   = "reviewer"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash string         `json:"-" gorm:"not null"`
	FullName     string         `json:"full_name" gorm:"not null"`
	IsVerified   bool           `json:"is_verified" gorm:"not null;default:false"`
	Roles        []Role         `json:"roles,omitempty" gorm:"many2many:user_roles;"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

type Role struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `json:"name" gorm:"not null;uniqueIndex"` // "learner", "reviewer", "admin", "super_admin"
}
