// Package record turns completed sessions into persisted result records.
package record

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/kanadrill/internal/model"
	"github.com/verte-zerg/kanadrill/internal/session"
)

// ErrPersist wraps storage failures while saving a record.
var ErrPersist = errors.New("failed to save result")

// Appender stores result records.
type Appender interface {
	Append(ctx context.Context, rec model.ResultRecord) error
}

// Recorder builds and saves result records.
type Recorder struct {
	log   Appender
	clock func() time.Time
	newID func() string
}

// Option customizes a Recorder.
type Option func(*Recorder)

// WithClock overrides the timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(r *Recorder) { r.clock = clock }
}

// WithIDs overrides the record id source.
func WithIDs(newID func() string) Option {
	return func(r *Recorder) { r.newID = newID }
}

// New returns a Recorder writing to log.
func New(log Appender, opts ...Option) *Recorder {
	r := &Recorder{
		log:   log,
		clock: time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Finalize builds the record for a completed session.
func (r *Recorder) Finalize(out session.Outcome) model.ResultRecord {
	questions := append([]model.QuestionResult(nil), out.Questions...)
	return model.ResultRecord{
		ID:              r.newID(),
		Timestamp:       r.clock().UTC(),
		Game:            out.Game,
		Mode:            out.Mode,
		CharacterSet:    out.Set,
		TotalQuestions:  len(questions),
		CorrectAnswers:  out.Correct,
		WrongAnswers:    out.Incorrect,
		DurationSeconds: int(out.Elapsed / time.Second),
		Questions:       questions,
	}
}

// Persist saves rec. Failures are wrapped in ErrPersist.
func (r *Recorder) Persist(ctx context.Context, rec model.ResultRecord) error {
	if err := r.log.Append(ctx, rec); err != nil {
		slog.Error("failed to persist result", "id", rec.ID, "game", rec.Game, "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	slog.Info("result saved",
		"id", rec.ID,
		"game", rec.Game,
		"mode", rec.Mode,
		"correct", rec.CorrectAnswers,
		"wrong", rec.WrongAnswers,
	)
	return nil
}

// Complete finalizes and persists a session outcome. The record is returned
// even when saving fails.
func (r *Recorder) Complete(ctx context.Context, out session.Outcome) (model.ResultRecord, error) {
	rec := r.Finalize(out)
	return rec, r.Persist(ctx, rec)
}
