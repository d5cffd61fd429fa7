package stats

import (
	"context"
	"time"

	"github.com/verte-zerg/kanadrill/internal/model"
)

// RecentLimit is how many sessions the recent list shows.
const RecentLimit = 5

// Lister loads stored result records.
type Lister interface {
	List(ctx context.Context) ([]model.ResultRecord, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Timeframe  model.Timeframe
	Records    []model.ResultRecord
	Characters []model.CharacterStat
	Weakest    []model.CharacterStat
	Overall    model.Overall
	Recent     []model.ResultRecord
	Accuracy   []float64
	Smoothed   []float64
}

// BuildReport loads records and prepares everything the stats views need.
func BuildReport(ctx context.Context, log Lister, cfg model.StatsConfig, now time.Time) (Report, error) {
	records, err := log.List(ctx)
	if err != nil {
		return Report{}, err
	}
	return Compute(records, cfg, now), nil
}

// Compute derives a report from already loaded records.
func Compute(records []model.ResultRecord, cfg model.StatsConfig, now time.Time) Report {
	tf := cfg.Timeframe
	if tf == "" {
		tf = model.TimeframeAll
	}
	records = FilterByTimeframe(FilterByGame(records, cfg.Game), tf, now)
	if cfg.Last > 0 && len(records) > cfg.Last {
		records = Recent(records, cfg.Last)
	}
	chars := Aggregate(records)
	accuracy := AccuracySeries(records)
	return Report{
		Timeframe:  tf,
		Records:    records,
		Characters: chars,
		Weakest:    Weakest(chars, cfg.Top),
		Overall:    Overall(records),
		Recent:     Recent(records, RecentLimit),
		Accuracy:   accuracy,
		Smoothed:   MovingAverage(accuracy, cfg.CurveWindow),
	}
}
