package model

import "time"

type User struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"column:hashed_password;not null" json:"-"`
	FullName       string    `gorm:"type:varchar(255);not null" json:"full_name"`
	PhoneNumber    string    `gorm:"type:varchar(30)" json:"phone_number"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	RoleID         int64     `gorm:"not null;index" json:"role_id"`
	Role           *Role     `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Address        *Address  `gorm:"foreignKey:UserID" json:"address,omitempty"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 管理者か
func (u *User) IsAdmin() bool {
	return u != nil && u.Role != nil && u.Role.Name == RoleAdmin
}
