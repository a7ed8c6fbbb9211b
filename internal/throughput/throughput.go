// Package throughput computes the operator-facing rollups: pour rate,
// pending estimate, per-status counts and tribe distribution.  Every
// function is a pure fold over its inputs; the same snapshot of
// events always produces the same summary.
package throughput

import (
	"math"
	"sort"
	"time"

	"github.com/festwine/tasting-gate/internal/model"
)

// UIAssistBoost is the measured throughput effect of moving the
// tribe/vintage decision off the critical path via pre-selection.  It
// is a declared business constant, not derived.
const UIAssistBoost = 1.25

// Proportional status split used only when per-ticket status history
// is unavailable.  A documented estimator, not the source of truth;
// SummarizeEvents folds real statuses and is always preferred.
const (
	authorizedShare = 0.85
	pendingShare    = 0.10
	deniedShare     = 0.05
)

// PourEvent is one completed pour as recorded at a booth.
type PourEvent struct {
	TicketID    string
	Category    model.Category
	Status      model.ConsentStatus
	CompletedAt time.Time
}

// Summarize derives a shift snapshot from a completed-pour count
// alone.  Status counts fall back to the proportional split, with the
// AUTHORIZED bucket absorbing rounding remainder so the counts always
// sum to the total.  A shift with no completed pours yields a zero
// snapshot; the average is undefined and reported as zero.
func Summarize(completed uint, shiftMinutes float64, uiAssist bool) model.ThroughputSnapshot {
	snap := model.ThroughputSnapshot{
		CompletedPours: completed,
		StatusCounts:   map[model.ConsentStatus]uint{},
	}
	if completed == 0 || shiftMinutes <= 0 {
		return snap
	}

	rate := float64(completed) / shiftMinutes * 60
	if uiAssist {
		rate *= UIAssistBoost
	}
	snap.PoursPerHour = int(math.Round(rate))
	snap.AvgSecondsPerPour = shiftMinutes * 60 / float64(completed)

	pending := uint(math.Round(pendingShare * float64(completed)))
	denied := uint(math.Round(deniedShare * float64(completed)))
	if pending+denied > completed {
		pending = completed
		denied = 0
	}
	snap.StatusCounts[model.StatusAuthorized] = completed - pending - denied
	snap.StatusCounts[model.StatusPending] = pending
	snap.StatusCounts[model.StatusDenied] = denied
	snap.PendingCount = pending
	return snap
}

// SummarizeEvents derives the snapshot from raw per-event history,
// replacing the proportional estimate with exact status counts.
func SummarizeEvents(events []PourEvent, shiftMinutes float64, uiAssist bool) model.ThroughputSnapshot {
	snap := Summarize(uint(len(events)), shiftMinutes, uiAssist)
	counts := map[model.ConsentStatus]uint{}
	for _, ev := range events {
		counts[ev.Status]++
	}
	snap.StatusCounts = counts
	snap.PendingCount = counts[model.StatusPending]
	return snap
}

// DistributionBy groups tribe selections into counts and rounded
// percentages of the total.  Tribes with zero selections are omitted.
// Ordering is by count descending, ties broken by tribe enumeration
// order, so a given input sequence always yields the same output.
func DistributionBy(selections []model.Category) model.CategoryDistribution {
	if len(selections) == 0 {
		return model.CategoryDistribution{}
	}
	counts := map[model.Category]uint{}
	for _, c := range selections {
		counts[c]++
	}

	dist := make(model.CategoryDistribution, 0, len(counts))
	total := float64(len(selections))
	for c, n := range counts {
		dist = append(dist, model.CategoryShare{
			Category: c,
			Count:    n,
			Percent:  int(math.Round(float64(n) / total * 100)),
		})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		ri, rj := model.CategoryRank(dist[i].Category), model.CategoryRank(dist[j].Category)
		if ri != rj {
			return ri < rj
		}
		return dist[i].Category < dist[j].Category
	})
	return dist
}

// Categories extracts the selection sequence from an event list, for
// feeding DistributionBy when only raw events are at hand.
func Categories(events []PourEvent) []model.Category {
	out := make([]model.Category, len(events))
	for i, ev := range events {
		out[i] = ev.Category
	}
	return out
}
