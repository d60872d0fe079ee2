package history

import "testing"

func TestDecodeObservation(t *testing.T) {
	obs, ok := decodeObservation([]byte(`{"dataset":"orders","count":120,"observed_at":"2024-03-01T00:00:00Z"}`))
	if !ok {
		t.Fatal("expected valid observation")
	}
	if obs.Dataset != "orders" || obs.Count != 120 {
		t.Errorf("unexpected observation: %+v", obs)
	}
	if obs.ObservedAt.IsZero() {
		t.Error("observed_at not parsed")
	}

	if _, ok := decodeObservation([]byte("not json")); ok {
		t.Error("expected non-json payload to be skipped")
	}
	if _, ok := decodeObservation([]byte(`{"count": 5}`)); ok {
		t.Error("expected observation without dataset to be skipped")
	}
}

func TestKafkaName(t *testing.T) {
	k := NewKafka([]string{"localhost:9092"}, "datacheck.counts")
	if k.Name() != "kafka" {
		t.Errorf("name = %q", k.Name())
	}
}
