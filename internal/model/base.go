package model

import (
	"time"
)

type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// --- 审计字段 ---
	CreatedBy int64 `gorm:"comment:创建人ID" json:"-"`
	UpdatedBy int64 `gorm:"comment:更新人ID" json:"-"`
}

// Owned 拥有归属用户的实体
type Owned interface {
	OwnedBy() int64
}

// AllModels 需要自动迁移的全部模型
func AllModels() []interface{} {
	return []interface{}{
		&User{}, &AuthToken{},
		&Vendor{}, &Category{},
		&Product{}, &SizeChart{}, &Size{}, &Image{},
		&Cart{}, &OrderItem{}, &Order{},
		&Review{},
	}
}
