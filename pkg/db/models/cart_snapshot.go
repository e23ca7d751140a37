package models

import "time"

// CartSnapshot holds the serialized line items of one cart under its storage key.
type CartSnapshot struct {
	Key       string    `gorm:"column:key;primaryKey;size:255"`
	Payload   string    `gorm:"column:payload;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}
