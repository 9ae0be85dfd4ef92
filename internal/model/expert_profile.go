package model

import (
	"time"
)

// ExpertProfile 专家认证档案，每个用户一条
// status 只存 pending / verified / revoked，expired 由 expires_at 派生
type ExpertProfile struct {
	ID         string     `gorm:"primaryKey;size:64" json:"id"`
	UserID     string     `gorm:"type:varchar(64);not null;uniqueIndex" json:"user_id"`
	Credential string     `gorm:"type:varchar(255);not null" json:"credential"`
	LicenseNo  string     `gorm:"type:varchar(64)" json:"license_no,omitempty"`
	Region     string     `gorm:"type:varchar(64)" json:"region,omitempty"`
	Status     string     `gorm:"type:varchar(16);not null;default:pending;index" json:"status"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReviewedBy string     `gorm:"type:varchar(64)" json:"reviewed_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ExpertProfile) TableName() string {
	return "expert_profiles"
}
