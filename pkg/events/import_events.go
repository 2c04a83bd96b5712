package events

import (
	"time"

	"github.com/google/uuid"
)

const ImportCommittedType = "IMPORT_COMMITTED"

// ImportCommitted announces that a reviewed import was handed to persistence.
type ImportCommitted struct {
	AuditId        uuid.UUID
	SessionId      uuid.UUID
	PractitionerId string
	PatientId      string
	ReuseCount     int
	CreateCount    int
	SkipCount      int
	SetCount       int
	NoteCount      int
	CommittedAt    time.Time
}

func (e ImportCommitted) EventType() string {
	return ImportCommittedType
}

func (e ImportCommitted) Payload() map[string]interface{} {
	data := map[string]interface{}{
		"audit_id":        e.AuditId,
		"session_id":      e.SessionId,
		"practitioner_id": e.PractitionerId,
		"reuse_count":     e.ReuseCount,
		"create_count":    e.CreateCount,
		"skip_count":      e.SkipCount,
		"set_count":       e.SetCount,
		"note_count":      e.NoteCount,
		"committed_at":    e.CommittedAt.Format(time.RFC3339),
	}
	if e.PatientId != "" {
		data["patient_id"] = e.PatientId
	}
	return data
}

func (e ImportCommitted) Timestamp() time.Time {
	return e.CommittedAt
}

func (e ImportCommitted) MessageID() string {
	return e.AuditId.String()
}
