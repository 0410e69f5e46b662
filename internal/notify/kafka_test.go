package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	f.records = append(f.records, rs...)
	var results kgo.ProduceResults
	for _, r := range rs {
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func (f *fakeProducer) Close() {}

func testEvent() LeadAssigned {
	return LeadAssigned{
		LeadID:           "lead-1",
		LeadName:         "Jane Doe",
		LeadPhone:        "0821234567",
		PreferredSuburbs: []string{"bryanston"},
		AgentID:          "a1",
		AgentName:        "Thandi Nkosi",
		AgentEmail:       "thandi@northside.example",
		Reason:           "suburb_match",
		AssignedAt:       time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestKafkaSinkProducesKeyedRecord(t *testing.T) {
	fake := &fakeProducer{}
	sink := &KafkaSink{client: fake, topic: "leads.assigned", logger: slog.Default()}

	require.NoError(t, sink.NotifyAgent(context.Background(), testEvent()))
	require.Len(t, fake.records, 1)

	record := fake.records[0]
	assert.Equal(t, "leads.assigned", record.Topic)
	assert.Equal(t, []byte("a1"), record.Key)

	var decoded LeadAssigned
	require.NoError(t, json.Unmarshal(record.Value, &decoded))
	assert.Equal(t, "lead-1", decoded.LeadID)
	assert.Equal(t, "suburb_match", decoded.Reason)
}

func TestKafkaSinkPropagatesProduceError(t *testing.T) {
	fake := &fakeProducer{err: errors.New("broker unavailable")}
	sink := &KafkaSink{client: fake, topic: "leads.assigned", logger: slog.Default()}

	err := sink.NotifyAgent(context.Background(), testEvent())
	assert.ErrorContains(t, err, "broker unavailable")
}
