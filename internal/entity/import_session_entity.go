package entity

import (
	"time"

	"ai-import-be/pkg/reconcile"

	"github.com/google/uuid"
)

// ImportDraft is a review session that has not been committed yet. It lives in
// the draft store (go-cache or Redis), never in Postgres.
type ImportDraft struct {
	Id             uuid.UUID
	PractitionerId string
	Session        *reconcile.Session
	Roster         []reconcile.PatientOption
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

type ImportSessionStatus string

const (
	ImportSessionStatusCommitted ImportSessionStatus = "committed"
)

// ImportSession is the audit record of a committed review.
type ImportSession struct {
	Id             uuid.UUID
	SessionId      uuid.UUID
	PractitionerId string
	PatientId      *string
	Status         ImportSessionStatus
	ReuseCount     int
	CreateCount    int
	SkipCount      int
	SetCount       int
	NoteCount      int
	Plan           reconcile.CommitPlan
	CommittedAt    time.Time
	CreatedAt      time.Time
}
