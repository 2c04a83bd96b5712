package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

type ByPractitionerID struct {
	PractitionerID string
}

func (s ByPractitionerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("practitioner_id = ?", s.PractitionerID)
}

type ByPatientID struct {
	PatientID string
}

func (s ByPatientID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("patient_id = ?", s.PatientID)
}
