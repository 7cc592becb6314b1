package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type MockKafkaWriter struct {
	mock.Mock
}

func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockKafkaWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestPublisher(t *testing.T, w KafkaWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w, logger: logger.Wrap(zaptest.NewLogger(t))}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	event := domain.Event{
		Type:       domain.EventApplicationRecorded,
		Key:        "5b0f7e52-8d41-4a4e-9f0e-1a2b3c4d5e6f",
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Payload:    domain.Application{EmployeeID: "emp-1"},
	}

	t.Run("writes keyed message", func(t *testing.T) {
		w := new(MockKafkaWriter)
		w.On("WriteMessages", mock.Anything, mock.Anything).Return(nil)
		p := newTestPublisher(t, w)

		require.NoError(t, p.Publish(context.Background(), event))

		msgs := w.Calls[0].Arguments.Get(1).([]kafka.Message)
		require.Len(t, msgs, 1)
		assert.Equal(t, []byte(event.Key), msgs[0].Key)
		assert.Equal(t, "event_type", msgs[0].Headers[0].Key)
		assert.Equal(t, []byte(domain.EventApplicationRecorded), msgs[0].Headers[0].Value)

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(msgs[0].Value, &decoded))
		assert.Equal(t, "application_recorded", decoded["type"])
		assert.Equal(t, event.Key, decoded["key"])
	})

	t.Run("write error is returned", func(t *testing.T) {
		w := new(MockKafkaWriter)
		w.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down"))
		p := newTestPublisher(t, w)

		err := p.Publish(context.Background(), event)
		assert.ErrorContains(t, err, "broker down")
	})

	t.Run("serialization error skips write", func(t *testing.T) {
		w := new(MockKafkaWriter)
		p := newTestPublisher(t, w)

		old := jsonMarshal
		jsonMarshal = func(interface{}) ([]byte, error) { return nil, errors.New("mock marshal error") }
		defer func() { jsonMarshal = old }()

		err := p.Publish(context.Background(), event)
		assert.ErrorContains(t, err, "serialize event")
		w.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
	})
}

func TestKafkaPublisher_Close(t *testing.T) {
	t.Run("close error is logged", func(t *testing.T) {
		core, recorded := observer.New(zap.ErrorLevel)
		w := new(MockKafkaWriter)
		w.On("Close").Return(errors.New("close failed"))
		p := &KafkaPublisher{writer: w, logger: logger.Wrap(zap.New(core))}

		assert.Error(t, p.Close())
		assert.Equal(t, 1, recorded.FilterMessage("Failed to close Kafka writer").Len())
	})

	t.Run("clean close", func(t *testing.T) {
		w := new(MockKafkaWriter)
		w.On("Close").Return(nil)
		p := newTestPublisher(t, w)

		assert.NoError(t, p.Close())
		w.AssertExpectations(t)
	})
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), domain.Event{Type: domain.EventJobCreated}))
}
