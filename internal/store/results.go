package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/verte-zerg/kanadrill/internal/model"
)

// ResultsKey holds the JSON array of result records.
const ResultsKey = "quizResults"

// ErrCorrupt is returned when the stored history cannot be decoded.
var ErrCorrupt = errors.New("stored results are corrupt")

// ResultLog is the append-only result history kept in a KV store.
type ResultLog struct {
	kv  KV
	key string
}

// NewResultLog returns a log stored under ResultsKey.
func NewResultLog(kv KV) *ResultLog {
	return &ResultLog{kv: kv, key: ResultsKey}
}

// Append adds rec to the end of the history.
func (l *ResultLog) Append(ctx context.Context, rec model.ResultRecord) error {
	return l.kv.Update(ctx, l.key, func(cur string, ok bool) (string, error) {
		records, err := decode(cur, ok)
		if err != nil {
			return "", err
		}
		records = append(records, rec)
		data, err := json.Marshal(records)
		if err != nil {
			return "", fmt.Errorf("failed to encode results: %w", err)
		}
		return string(data), nil
	})
}

// List returns all records in append order.
func (l *ResultLog) List(ctx context.Context) ([]model.ResultRecord, error) {
	cur, ok, err := l.kv.Get(ctx, l.key)
	if err != nil {
		return nil, err
	}
	return decode(cur, ok)
}

// Clear removes the whole history.
func (l *ResultLog) Clear(ctx context.Context) error {
	return l.kv.Clear(ctx, l.key)
}

func decode(raw string, ok bool) ([]model.ResultRecord, error) {
	if !ok || raw == "" {
		return nil, nil
	}
	var records []model.ResultRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return records, nil
}
