package domain

import (
	"time"

	"gorm.io/gorm"

	"github.com/Devstep613/doshihardware/pkg/common"
)

// Product represents a building-materials catalog entry
type Product struct {
	ID            int64      `json:"id,string" form:"id"`
	Name          string     `gorm:"index" json:"name" form:"name"`
	Category      string     `gorm:"index;size:100" json:"category" form:"category"`
	Price         float64    `json:"price" form:"price"` // price in KSh
	Description   string     `gorm:"type:text" json:"description" form:"description"`
	ImageUrl      string     `gorm:"size:1024" json:"image_url" form:"image_url"` // set via the upload step before save
	IsFeatured    bool       `json:"is_featured" form:"is_featured"`
	IsOnOffer     bool       `gorm:"index" json:"is_on_offer" form:"is_on_offer"`
	OriginalPrice *float64   `json:"original_price,omitempty" form:"original_price"`
	DiscountPrice *float64   `json:"discount_price,omitempty" form:"discount_price"`
	OfferEndDate  *time.Time `json:"offer_end_date,omitempty" form:"offer_end_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == 0 {
		p.ID = common.UUIDint64()
	}
	return nil
}
