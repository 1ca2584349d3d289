package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultRating is stored when a wine is created without a rating.
const DefaultRating = "0/0"

// Wine is one inventory record. ID and Uploaded are owned by the store:
// both are assigned on insert and never written again.
type Wine struct {
	ID       string    `gorm:"primaryKey;size:36"`
	Name     string    `gorm:"size:255"`
	Location string    `gorm:"size:255"`
	Quantity *float64
	Type     string    `gorm:"size:128"`
	Rating   string    `gorm:"size:32;not null;default:'0/0'"`
	Uploaded time.Time `gorm:"not null;index"`
}

// MutableColumns lists the columns an update may touch.
var MutableColumns = []string{"name", "location", "quantity", "type", "rating"}

func (w *Wine) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.Rating == "" {
		w.Rating = DefaultRating
	}
	if w.Uploaded.IsZero() {
		w.Uploaded = time.Now().UTC()
	}
	return nil
}
