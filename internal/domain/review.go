package domain

import (
	"time"

	"gorm.io/gorm"

	"github.com/Devstep613/doshihardware/pkg/common"
)

// Review represents a public product review. ProductId is a soft reference:
// a review without one is treated as a general review of the store.
type Review struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `json:"name" form:"name"`
	Email     string    `gorm:"index" json:"email" form:"email"`
	Message   string    `gorm:"type:text" json:"message" form:"message"`
	Rating    int       `gorm:"index" json:"rating" form:"rating"` // 1..5
	ProductId *int64    `gorm:"index" json:"product_id,string,omitempty" form:"product_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Review) TableName() string {
	return "reviews"
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == 0 {
		r.ID = common.UUIDint64()
	}
	return nil
}
