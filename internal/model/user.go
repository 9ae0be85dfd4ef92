package model

import (
	"time"
)

// User 审核流水线可见的用户档案，身份签发由外部系统负责
type User struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Username  string    `gorm:"type:varchar(64);uniqueIndex" json:"username"`
	Roles     []string  `gorm:"type:json;serializer:json" json:"roles"`
	IsBanned  bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_banned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
