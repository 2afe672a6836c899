package insight

import (
	"fmt"
	"math"

	"github.com/oms2304/nutra-cli/internal/model"
)

const (
	minSleepSamples      = 4
	shortSleepFloorH     = 0.1
	shortSleepCeilingH   = 6.5
	bedtimeStdDevMinutes = 75.0
)

func ruleSleepDuration(w *window) *model.UserInsight {
	if len(w.sleep) < minSleepSamples {
		return nil
	}
	nights := nightlyAsleepHours(w.sleep)
	if len(nights) < 1 {
		return nil
	}
	sum := 0.0
	for _, h := range nights {
		sum += h
	}
	avg := sum / float64(len(nights))
	if avg >= shortSleepFloorH && avg <= shortSleepCeilingH {
		return &model.UserInsight{
			Title:    "You're short on sleep",
			Message:  fmt.Sprintf("You've averaged %.1f hours of sleep per night recently. Under 7 hours tends to increase appetite and erode willpower around food.", avg),
			Category: model.CategorySleep,
			Priority: 10,
			RelatedData: map[string]string{
				"avg_sleep_hours": fmt.Sprintf("%.1f", avg),
			},
		}
	}
	return nil
}

func ruleSleepConsistency(w *window) *model.UserInsight {
	if len(w.sleep) < minSleepSamples {
		return nil
	}
	bedtimes := nightlyBedtimeMinutes(w.sleep)
	if len(bedtimes) <= 1 {
		return nil
	}
	sd := stdDev(bedtimes)
	if sd > bedtimeStdDevMinutes {
		return &model.UserInsight{
			Title:    "Bedtime is all over the place",
			Message:  fmt.Sprintf("Your bedtime has swung by roughly %.0f minutes night to night. A steadier sleep schedule improves both sleep quality and next-day eating.", sd),
			Category: model.CategorySleep,
			Priority: 8,
		}
	}
	return nil
}

// nightlyAsleepHours groups asleep-state samples into nights keyed by the
// date the sample ended, and sums hours per night.
func nightlyAsleepHours(samples []model.SleepSample) map[string]float64 {
	nights := map[string]float64{}
	for _, s := range samples {
		if s.State != model.SleepStateAsleep {
			continue
		}
		if !s.End.After(s.Start) {
			continue
		}
		key := s.End.Format("2006-01-02")
		nights[key] += s.End.Sub(s.Start).Hours()
	}
	return nights
}

// nightlyBedtimeMinutes returns one bedtime per night as minutes of day.
// Bedtimes after midnight are shifted past 1440 so that 23:50 and 00:10
// compare as twenty minutes apart, not as most of a day.
func nightlyBedtimeMinutes(samples []model.SleepSample) []float64 {
	earliest := map[string]float64{}
	for _, s := range samples {
		key := s.End.Format("2006-01-02")
		m := float64(s.Start.Hour()*60 + s.Start.Minute())
		if m < 720 {
			m += 1440
		}
		if cur, ok := earliest[key]; !ok || m < cur {
			earliest[key] = m
		}
	}
	out := make([]float64, 0, len(earliest))
	for _, m := range earliest {
		out = append(out, m)
	}
	return out
}

func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sum := 0.0
	for _, v := range values {
		diff := v - mean
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(values)))
}
