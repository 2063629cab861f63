package insights

import (
	"math"
	"time"

	"github.com/lems-app/lems-server/internal/domain"
)

// UnknownType is the summary fallback when no session carries a type label
// or no label wins outright.
const UnknownType = "Unknown"

// Rollup is the numeric portion of an insights report, before the text
// enrichment fields are merged in.
type Rollup struct {
	TotalSessions   int
	AverageDuration int
	MostUsedType    string
	Weekly          map[string]BucketRollup
	Monthly         map[string]BucketRollup
}

// Accumulate folds sessions into weekly and monthly bucket rollups plus the
// overall usage summary. now substitutes for sessions without a timestamp.
// Totals are summed over the full pass and divided once at the end, so
// repeated division cannot accumulate floating-point drift. Malformed data
// degrades instead of aborting: unnamed segments are skipped in buckets and
// absent durations were already defaulted to zero at the storage boundary.
func Accumulate(sessions []domain.Session, now time.Time) Rollup {
	r := Rollup{
		TotalSessions: len(sessions),
		Weekly:        make(map[string]BucketRollup),
		Monthly:       make(map[string]BucketRollup),
	}

	var totalDuration float64
	typeCounts := make(map[string]int)
	var typeOrder []string

	for _, s := range sessions {
		ts := now
		if s.Timestamp != nil {
			ts = *s.Timestamp
		}

		accumulateBucket(r.Weekly, WeekKey(ts), s.Segments)
		accumulateBucket(r.Monthly, MonthKey(ts), s.Segments)

		totalDuration += s.TotalDuration()

		if s.Type != "" {
			if typeCounts[s.Type] == 0 {
				typeOrder = append(typeOrder, s.Type)
			}
			typeCounts[s.Type]++
		}
	}

	if r.TotalSessions > 0 {
		r.AverageDuration = int(math.Round(totalDuration / float64(r.TotalSessions)))
	}
	r.MostUsedType = mostUsedType(typeCounts, typeOrder)

	return r
}

// accumulateBucket folds one session's segments into the bucket at key. The
// session itself always counts, even when every segment is unnamed.
func accumulateBucket(buckets map[string]BucketRollup, key string, segments []domain.Segment) {
	b := buckets[key]
	if b.Segments == nil {
		b.Segments = make(map[string]SegmentRollup)
	}
	b.Count++

	for _, seg := range segments {
		if seg.Name == "" {
			continue
		}
		sr := b.Segments[seg.Name]
		sr.Total += seg.Duration
		sr.Planned += seg.PlannedDuration
		sr.Count++
		b.Segments[seg.Name] = sr
	}

	buckets[key] = b
}

// mostUsedType picks the first type reaching the maximum count in
// encounter order.
func mostUsedType(counts map[string]int, order []string) string {
	best := UnknownType
	bestCount := 0
	for _, label := range order {
		if counts[label] > bestCount {
			best = label
			bestCount = counts[label]
		}
	}
	return best
}
