package communication

import (
	"testing"

	"netinv/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestSendEventDeliversWhenRoom(t *testing.T) {
	ch := make(chan models.Event, 1)
	SendEvent(ch, models.Event{Type: models.EventDelete}, "Test")

	assert.Len(t, ch, 1)
	assert.Equal(t, models.EventDelete, (<-ch).Type)
}

func TestSendEventDropsWhenFull(t *testing.T) {
	ch := make(chan models.Event, 1)
	SendEvent(ch, models.Event{Type: models.EventCreate}, "Test")
	SendEvent(ch, models.Event{Type: models.EventDelete}, "Test")

	assert.Len(t, ch, 1)
	assert.Equal(t, models.EventCreate, (<-ch).Type)
}

func TestSendEventNilChannel(t *testing.T) {
	assert.NotPanics(t, func() {
		SendEvent(nil, models.Event{Type: models.EventCreate}, "Test")
	})
}
