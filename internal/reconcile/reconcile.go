// Package reconcile merges raw per-day sleep segments into one canonical
// record per day: a designated main segment, auxiliary segments, and
// aggregate totals over the segments the scoring system actually counted.
package reconcile

import (
	"sort"

	"HealthPulse/internal/model"
)

// Valid reports whether a segment counts toward aggregation. A segment is
// valid when it is the day's primary sleep type, or when it carries a
// score delta. Fragments the upstream scoring ignored (very short naps)
// have no delta and are excluded from totals entirely.
func Valid(s *model.SleepSegment) bool {
	return s.SleepType == model.SleepTypeLong || s.SleepScoreDelta != nil
}

// BuildDay constructs the canonical representation of one day from its
// segments. Pure: the input slice is not modified.
func BuildDay(day string, segments []model.SleepSegment) model.CanonicalDay {
	cd := model.CanonicalDay{Day: day, SourceDay: day}

	var valid []model.SleepSegment
	for _, s := range segments {
		if Valid(&s) {
			valid = append(valid, s)
		}
	}
	cd.ValidCount = len(valid)
	cd.MultiSegment = len(valid) > 1
	if len(valid) == 0 {
		return cd
	}

	// Main selection: the primary sleep type wins; with no primary event,
	// fall back to the longest valid segment.
	mainIdx := -1
	for i := range valid {
		if valid[i].SleepType == model.SleepTypeLong {
			mainIdx = i
			break
		}
	}
	if mainIdx == -1 {
		for i := range valid {
			if mainIdx == -1 || valid[i].TotalSleepDuration > valid[mainIdx].TotalSleepDuration {
				mainIdx = i
			}
		}
	}

	main := valid[mainIdx]
	cd.Main = &main
	for i := range valid {
		if i != mainIdx {
			cd.Auxiliary = append(cd.Auxiliary, valid[i])
		}
	}

	for i := range valid {
		cd.TotalDuration += valid[i].TotalSleepDuration
	}

	// The backend rewrites the main segment's stored score to the base
	// score, with nap deltas already backed out. The day's aggregate adds
	// them back; the boost is the auxiliary contribution, never negative.
	if main.Score != nil {
		base := *main.Score
		cd.BaseScore = &base

		totalDelta := 0
		for i := range valid {
			if valid[i].SleepScoreDelta != nil {
				totalDelta += *valid[i].SleepScoreDelta
			}
		}
		summary := base + totalDelta
		cd.SummaryScore = &summary

		boost := summary - base
		if boost < 0 {
			boost = 0
		}
		cd.Boost = boost
	}

	return cd
}

// Reconcile builds the canonical day for targetDay. When the target day has
// no valid segments, it walks backward through the supplied history and
// returns the most recent earlier day that has at least one, with SourceDay
// tagged so callers can label the data's true origin. Returns nil when no
// day qualifies.
func Reconcile(targetDay string, segments []model.SleepSegment) *model.CanonicalDay {
	byDay := make(map[string][]model.SleepSegment)
	for _, s := range segments {
		byDay[s.Day] = append(byDay[s.Day], s)
	}

	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	// ISO dates sort lexicographically; newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	for _, d := range days {
		if d > targetDay {
			continue
		}
		cd := BuildDay(d, byDay[d])
		if cd.ValidCount == 0 {
			continue
		}
		cd.Day = targetDay
		cd.SourceDay = d
		return &cd
	}
	return nil
}

// ReconcileAll produces one canonical day per distinct day in the input,
// newest first. Days with no valid segments still appear, with zero totals.
func ReconcileAll(segments []model.SleepSegment) []model.CanonicalDay {
	byDay := make(map[string][]model.SleepSegment)
	for _, s := range segments {
		byDay[s.Day] = append(byDay[s.Day], s)
	}
	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	out := make([]model.CanonicalDay, 0, len(days))
	for _, d := range days {
		out = append(out, BuildDay(d, byDay[d]))
	}
	return out
}

// Flatten collects the segments of grouped records into one slice.
func Flatten(groups []model.DaySleepGroup) []model.SleepSegment {
	var out []model.SleepSegment
	for _, g := range groups {
		for _, s := range g.Segments {
			if s.Day == "" {
				s.Day = g.Day
			}
			out = append(out, s)
		}
	}
	return out
}
