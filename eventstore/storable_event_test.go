package eventstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/AntonStoeckl/library-lending-go/eventstore"
)

func Test_BuildStorableEvent(t *testing.T) {
	occurredAt := time.Date(2025, 10, 1, 10, 0, 0, 0, time.UTC)

	event, err := BuildStorableEvent("BookAddedToCatalog", occurredAt, []byte(`{"BookISBN":"isbn-1"}`), []byte(`{"MessageID":"m"}`))

	require.NoError(t, err)
	assert.Equal(t, "BookAddedToCatalog", event.EventType)
	assert.Equal(t, occurredAt, event.OccurredAt)
	assert.JSONEq(t, `{"BookISBN":"isbn-1"}`, string(event.PayloadJSON))
	assert.JSONEq(t, `{"MessageID":"m"}`, string(event.MetadataJSON))
}

func Test_BuildStorableEvent_RejectsInvalidInput(t *testing.T) {
	_, err := BuildStorableEvent("", time.Now(), []byte(`{}`), []byte(`{}`))
	assert.ErrorIs(t, err, ErrEmptyEventType)

	_, err = BuildStorableEvent("BookAddedToCatalog", time.Now(), []byte(`{"BookISBN":`), []byte(`{}`))
	assert.ErrorIs(t, err, ErrInvalidPayloadJSON)

	_, err = BuildStorableEvent("BookAddedToCatalog", time.Now(), []byte(`{}`), []byte(`not json`))
	assert.ErrorIs(t, err, ErrInvalidMetadataJSON)
}

func Test_BuildStorableEventWithEmptyMetadata(t *testing.T) {
	event, err := BuildStorableEventWithEmptyMetadata("UserRegistered", time.Now(), []byte(`{"UserID":"U001"}`))

	require.NoError(t, err)
	assert.Equal(t, "{}", string(event.MetadataJSON))
}
