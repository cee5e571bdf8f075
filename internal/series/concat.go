// ABOUTME: Cross-day concatenation into the final dataset.
// ABOUTME: Stable timestamp sort; daily summaries deduplicated keep-first.
package series

import (
	"sort"

	"github.com/charmbracelet/log"

	"github.com/akeil/wellkit/internal/rawstore"
)

// Concat merges per-day frames into one chronologically sorted minute
// table and a deduplicated daily summary table. Zero days yields two
// empty tables, never an error.
func Concat(frames []*DayFrame, rows []SummaryRow) Dataset {
	ds := Dataset{
		Minutes:   make([]MinuteRow, 0),
		Summaries: make([]SummaryRow, 0, len(rows)),
	}

	for _, f := range frames {
		ds.Minutes = append(ds.Minutes, f.Rows()...)
	}
	// Stable: duplicate timestamps across overlapping day windows keep
	// day-processing order.
	sort.SliceStable(ds.Minutes, func(i, j int) bool {
		return ds.Minutes[i].Timestamp.Before(ds.Minutes[j].Timestamp)
	})

	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if seen[r.CalendarDate] {
			continue
		}
		seen[r.CalendarDate] = true
		ds.Summaries = append(ds.Summaries, r)
	}
	return ds
}

// Build runs the whole reconstruction: list days, assemble each, concat.
// A day whose summary cannot be read or parsed is skipped with a warning;
// only a missing activities directory is fatal.
func Build(store rawstore.Store, opts Options, logger *log.Logger) (Dataset, error) {
	if logger == nil {
		logger = log.Default()
	}

	dates, err := store.Dates()
	if err != nil {
		return Dataset{}, err
	}
	if opts.LastNDays > 0 && len(dates) > opts.LastNDays {
		dates = dates[len(dates)-opts.LastNDays:]
	}

	builder := NewBuilder(store, opts, logger)
	frames := make([]*DayFrame, 0, len(dates))
	rows := make([]SummaryRow, 0, len(dates))
	for _, date := range dates {
		frame, row, err := builder.BuildDay(date)
		if err != nil {
			logger.Warn("skipping day", "date", date, "err", err)
			continue
		}
		frames = append(frames, frame)
		rows = append(rows, row)
	}
	return Concat(frames, rows), nil
}
