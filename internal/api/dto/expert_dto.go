package dto

// ExpertApplyDTO 提交专家认证申请
type ExpertApplyDTO struct {
	Credential string `json:"credential" binding:"required" validate:"min=1,max=255"`
	LicenseNo  string `json:"license_no" validate:"max=64"`
	Region     string `json:"region" validate:"max=64"`
}

// ExpertProfileDTO 专家档案
// effective_status 为派生状态，verified 且过期时显示 expired
type ExpertProfileDTO struct {
	ID              string `json:"id"`
	UserID          string `json:"user_id"`
	Credential      string `json:"credential"`
	LicenseNo       string `json:"license_no,omitempty"`
	Region          string `json:"region,omitempty"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
	VerifiedAt      string `json:"verified_at,omitempty"`
	ExpiresAt       string `json:"expires_at,omitempty"`
	RevokedAt       string `json:"revoked_at,omitempty"`
	ReviewedBy      string `json:"reviewed_by,omitempty"`
	CreatedAt       string `json:"created_at"`
}

// ExtendDTO 延长认证有效期
type ExtendDTO struct {
	Months int `json:"months" binding:"required" validate:"min=1,max=60"`
}
