package model

import "time"

// 書籍1件。Quantityは表示用の在庫数で、注文確定では減算しない。
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Author      string    `gorm:"type:varchar(255)" json:"author"`
	PublishDate string    `gorm:"type:varchar(50)" json:"publish_date"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity    int64     `gorm:"not null;default:0" json:"quantity"`
	Image       string    `gorm:"type:varchar(255)" json:"image"`
	CategoryID  int64     `gorm:"not null;index" json:"category_id"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
