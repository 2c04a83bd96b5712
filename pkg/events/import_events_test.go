package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestImportCommitted_Payload(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	evt := ImportCommitted{
		AuditId:        uuid.New(),
		SessionId:      uuid.New(),
		PractitionerId: "pr-1",
		ReuseCount:     2,
		CreateCount:    1,
		CommittedAt:    at,
	}

	var e Event = evt
	assert.Equal(t, "IMPORT_COMMITTED", e.EventType())
	assert.Equal(t, at, e.Timestamp())

	payload := e.Payload()
	assert.Equal(t, "pr-1", payload["practitioner_id"])
	assert.Equal(t, 2, payload["reuse_count"])
	assert.Equal(t, "2026-03-01T10:00:00Z", payload["committed_at"])
	assert.NotContains(t, payload, "patient_id")
	assert.Equal(t, evt.AuditId.String(), evt.MessageID())
}

func TestImportCommitted_PayloadWithPatient(t *testing.T) {
	evt := ImportCommitted{PatientId: "p-9", CommittedAt: time.Now()}

	assert.Equal(t, "p-9", evt.Payload()["patient_id"])
}
