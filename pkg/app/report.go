package app

import (
	"context"
	"time"

	"tableflip.dev/gardencal/pkg/entry"
)

// ReportItem is an entry changed inside the report window.
type ReportItem struct {
	Entry     *entry.Entry
	Category  entry.Category
	ChangedAt time.Time
	New       bool
}

// ReportSection groups changed entries by period.
type ReportSection struct {
	Period  string
	Entries []ReportItem
}

// ReportResult lists the entries added or edited between two times.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Total    int
}

// Report returns entries whose last change falls between since and until,
// grouped by period in projection order. An entry appears under each of its
// periods but counts once toward Total.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if err := ctx.Err(); err != nil {
		return ReportResult{}, err
	}
	if since.After(until) {
		since, until = until, since
	}
	snap := s.List(ctx)

	grouped := make(map[string][]ReportItem)
	total := 0
	for _, e := range snap.All() {
		changed := e.Updated.Time
		if changed.IsZero() {
			changed = e.Created.Time
		}
		if changed.Before(since) || changed.After(until) {
			continue
		}
		total++
		item := ReportItem{
			Entry:     e,
			Category:  e.EffectiveCategory(),
			ChangedAt: changed,
			New:       e.Created.Equal(e.Updated.Time) || e.Updated.IsZero(),
		}
		for _, period := range e.Periods {
			grouped[period] = append(grouped[period], item)
		}
	}

	res := ReportResult{Since: since, Until: until, Total: total}
	for _, period := range s.Periods() {
		if items, ok := grouped[period]; ok {
			res.Sections = append(res.Sections, ReportSection{Period: period, Entries: items})
		}
	}
	return res, nil
}
