package model

import "time"

// 確定済み注文。作成後は更新しない。
// TotalPriceは確定時の明細合計で、後から商品価格が変わっても動かない。
type Order struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"not null;index" json:"user_id"`
	Date       string    `gorm:"type:varchar(50);not null" json:"date"`
	TotalPrice float64   `gorm:"type:decimal(10,2);not null" json:"total_price"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
