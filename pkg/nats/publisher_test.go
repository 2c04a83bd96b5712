package nats

import (
	"testing"
	"time"

	"ai-import-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "imports.IMPORT_COMMITTED", Subject("IMPORT_COMMITTED"))
}

func TestPublisher_CloseWithoutConnection(t *testing.T) {
	p := &Publisher{}
	assert.NotPanics(t, p.Close)
}

func TestPublishOpts(t *testing.T) {
	plain := events.BaseEvent{Type: "PING", OccurredAt: time.Now()}
	assert.Empty(t, publishOpts(plain))

	committed := events.ImportCommitted{AuditId: uuid.New()}
	assert.Len(t, publishOpts(committed), 1)
}
