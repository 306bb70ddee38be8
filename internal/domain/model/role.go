package model

type RoleName string

const (
	RoleAdmin RoleName = "admin"
	RoleUser  RoleName = "user"
)

// 登録時のデフォルトはuser
type Role struct {
	ID   int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name RoleName `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
}
