package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackedUser is one username on the watch list. The full set is loaded
// fresh at the start of every pipeline run.
type TrackedUser struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"added_at"`
}

func (u *TrackedUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
