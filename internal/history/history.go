// Package history supplies historical record counts for anomaly checks.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafka "github.com/segmentio/kafka-go"
)

// Observation is one published record-count measurement for a dataset.
type Observation struct {
	Dataset    string    `json:"dataset"`
	Count      float64   `json:"count"`
	ObservedAt time.Time `json:"observed_at"`
}

// Source yields the historical record counts of a dataset in publication
// order, oldest first.
type Source interface {
	Name() string
	Fetch(ctx context.Context, dataset string) ([]float64, error)
}

// Kafka reads observations from a topic of JSON-encoded Observation
// messages.
type Kafka struct {
	brokers []string
	topic   string
	limit   int
}

func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{brokers: brokers, topic: topic, limit: 500}
}

func (k *Kafka) Name() string {
	return "kafka"
}

// Fetch reads up to the message cap from the topic and collects the counts
// published for the dataset, in arrival order. Messages that do not decode
// as observations or that belong to other datasets are skipped.
func (k *Kafka) Fetch(ctx context.Context, dataset string) ([]float64, error) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  k.brokers,
		Topic:    k.topic,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
	defer r.Close()

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var counts []float64
	for read := 0; read < k.limit; read++ {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			break
		}
		obs, ok := decodeObservation(m.Value)
		if !ok || obs.Dataset != dataset {
			continue
		}
		counts = append(counts, obs.Count)
	}

	if len(counts) == 0 {
		return nil, fmt.Errorf("no record counts found in kafka topic %s for dataset %s", k.topic, dataset)
	}
	return counts, nil
}

// decodeObservation parses one message payload; ok is false for non-JSON
// payloads and for observations without a dataset name.
func decodeObservation(value []byte) (Observation, bool) {
	var obs Observation
	if err := json.Unmarshal(value, &obs); err != nil {
		return Observation{}, false
	}
	if obs.Dataset == "" {
		return Observation{}, false
	}
	return obs, true
}
