// Package stats contains statistics calculations and reporting.
package stats

import (
	"sort"
	"time"

	"github.com/verte-zerg/kanadrill/internal/model"
)

const (
	week  = 7 * 24 * time.Hour
	month = 30 * 24 * time.Hour
)

// Aggregate folds per-question results into per-character stats, keyed on the
// displayed character. The result is sorted by attempts.
func Aggregate(records []model.ResultRecord) []model.CharacterStat {
	index := map[string]int{}
	var out []model.CharacterStat
	for _, rec := range records {
		for _, q := range rec.Questions {
			i, ok := index[q.Character]
			if !ok {
				i = len(out)
				index[q.Character] = i
				out = append(out, model.CharacterStat{Character: q.Character})
			}
			st := &out[i]
			st.TotalAttempts++
			if q.Correct {
				st.CorrectAttempts++
			} else {
				st.WrongAttempts++
			}
		}
	}
	for i := range out {
		out[i].Accuracy = float64(out[i].CorrectAttempts) / float64(out[i].TotalAttempts) * 100
	}
	SortByAttempts(out)
	return out
}

// FilterByTimeframe keeps records dated within the timeframe ending at now.
func FilterByTimeframe(records []model.ResultRecord, tf model.Timeframe, now time.Time) []model.ResultRecord {
	var span time.Duration
	switch tf {
	case model.TimeframeWeek:
		span = week
	case model.TimeframeMonth:
		span = month
	default:
		return append([]model.ResultRecord(nil), records...)
	}
	cutoff := now.Add(-span)
	out := make([]model.ResultRecord, 0, len(records))
	for _, rec := range records {
		if !rec.Timestamp.Before(cutoff) {
			out = append(out, rec)
		}
	}
	return out
}

// FilterByGame keeps records from one game. An empty game keeps everything.
func FilterByGame(records []model.ResultRecord, game model.Game) []model.ResultRecord {
	if game == "" {
		return records
	}
	out := make([]model.ResultRecord, 0, len(records))
	for _, rec := range records {
		if rec.Game == game {
			out = append(out, rec)
		}
	}
	return out
}

// Overall summarizes records. Average accuracy is the mean of per-record
// accuracy.
func Overall(records []model.ResultRecord) model.Overall {
	out := model.Overall{TotalSessions: len(records)}
	if len(records) == 0 {
		return out
	}
	var accSum float64
	for _, rec := range records {
		out.TotalQuestions += rec.TotalQuestions
		out.TotalCorrect += rec.CorrectAnswers
		accSum += rec.Accuracy()
	}
	out.AverageAccuracy = accSum / float64(len(records))
	return out
}

// Recent returns up to n records, newest first.
func Recent(records []model.ResultRecord, n int) []model.ResultRecord {
	out := append([]model.ResultRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// AccuracySeries returns per-record accuracy in chronological order.
func AccuracySeries(records []model.ResultRecord) []float64 {
	ordered := append([]model.ResultRecord(nil), records...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})
	out := make([]float64, len(ordered))
	for i, rec := range ordered {
		out[i] = rec.Accuracy()
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		den := i + 1
		if i >= window {
			sum -= values[i-window]
			den = window
		}
		out[i] = sum / float64(den)
	}
	return out
}
