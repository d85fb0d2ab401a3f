package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Style is a catalog entry customers pick when booking. Value is the unique
// slug appointments reference; Price may be nil, in which case the system
// default price applies.
type Style struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Category  string           `gorm:"type:varchar(100);not null;index" json:"category"`
	Name      string           `gorm:"type:varchar(255);not null" json:"name"`
	Value     string           `gorm:"type:varchar(100);uniqueIndex;not null" json:"value"`
	Price     *decimal.Decimal `gorm:"type:decimal(10,2)" json:"price,omitempty"`
	IsActive  *bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Style) TableName() string {
	return "styles"
}

func (s *Style) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// StyleCategory groups styles in the public catalog. Name is unique after
// case normalization. Deletion is blocked while styles reference it.
type StyleCategory struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	IsActive    *bool     `gorm:"not null;default:true" json:"is_active"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StyleCategory) TableName() string {
	return "style_categories"
}

func (c *StyleCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
