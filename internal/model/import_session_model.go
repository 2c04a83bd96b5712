package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ImportSession struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	PractitionerId string         `gorm:"type:varchar(64);not null;index"`
	PatientId      *string        `gorm:"type:varchar(64);index"`
	Status         string         `gorm:"type:varchar(32);not null"`
	ReuseCount     int            `gorm:"not null;default:0"`
	CreateCount    int            `gorm:"not null;default:0"`
	SkipCount      int            `gorm:"not null;default:0"`
	SetCount       int            `gorm:"not null;default:0"`
	NoteCount      int            `gorm:"not null;default:0"`
	Plan           datatypes.JSON `gorm:"type:jsonb;not null"`
	CommittedAt    time.Time      `gorm:"not null"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
}

func (ImportSession) TableName() string {
	return "import_sessions"
}
