package model

import "time"

// User 平台用户（买家 / 商家 / 管理员）
type User struct {
	BaseModel
	Email     string `gorm:"size:254;uniqueIndex;not null"`
	Username  string `gorm:"size:150"`
	FirstName string `gorm:"size:150"`
	LastName  string `gorm:"size:150"`
	Password  string `gorm:"size:255;not null"` // 哈希密码

	// 角色标记
	IsActive bool `gorm:"not null;index"`
	IsStaff  bool `gorm:"not null"`
	IsVendor bool `gorm:"not null"`

	LastLogin  *time.Time
	DateJoined time.Time `gorm:"autoCreateTime"`

	AuthToken *AuthToken `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) OwnedBy() int64 {
	return u.ID
}

// AuthToken 用户认证令牌，每个用户最多一个
type AuthToken struct {
	BaseModel
	Key       string    `gorm:"size:512;uniqueIndex;not null"`
	UserID    int64     `gorm:"uniqueIndex;not null"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;"`
	ExpiresAt time.Time `gorm:"index"`
}

func (AuthToken) TableName() string {
	return "auth_tokens"
}

// String 令牌的字符串形式（即 key）
func (t *AuthToken) String() string {
	if t == nil {
		return ""
	}
	return t.Key
}

// Expired 是否已过期
func (t *AuthToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
