package domain

import (
	"time"

	"gorm.io/gorm"

	"github.com/Devstep613/doshihardware/pkg/common"
)

// Testimonial represents a curated customer testimonial shown on the site
type Testimonial struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `gorm:"index" json:"name" form:"name"`
	Message   string    `gorm:"type:text" json:"message" form:"message"`
	Rating    int       `json:"rating" form:"rating"` // 1..5
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Testimonial) TableName() string {
	return "testimonials"
}

func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	if t.ID == 0 {
		t.ID = common.UUIDint64()
	}
	return nil
}
