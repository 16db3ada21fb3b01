package domain

import (
	"time"

	"gorm.io/gorm"

	"github.com/Devstep613/doshihardware/pkg/common"
)

// Inquiry represents a contact form submission managed from the back office
type Inquiry struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `json:"name" form:"name"`
	Email     string    `gorm:"index" json:"email" form:"email"`
	Phone     string    `gorm:"size:20" json:"phone" form:"phone"`
	Message   string    `gorm:"type:text" json:"message" form:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Inquiry) TableName() string {
	return "inquiries"
}

func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == 0 {
		i.ID = common.UUIDint64()
	}
	return nil
}
