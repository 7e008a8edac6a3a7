package lineage

import "sync/atomic"

// ProgressFunc receives overall progress in percents [0, 100]
type ProgressFunc func(percent int)

// progressReporter maps done/total units of a phase onto [from, to] percents.
// Each percent value is reported at most once and values never decrease.
type progressReporter struct {
	callback ProgressFunc
	last     *atomic.Int64
	from     int
	to       int
	total    int64
	done     atomic.Int64
}

func newProgressReporter(callback ProgressFunc, last *atomic.Int64, from, to int, total int) *progressReporter {
	return &progressReporter{
		callback: callback,
		last:     last,
		from:     from,
		to:       to,
		total:    int64(total),
	}
}

// step marks one unit of work as done
func (reporter *progressReporter) step() {
	if reporter == nil || reporter.callback == nil {
		return
	}
	done := reporter.done.Add(1)
	percent := reporter.from
	if reporter.total > 0 {
		percent += int(int64(reporter.to-reporter.from) * done / reporter.total)
	}
	reporter.report(percent)
}

// report fires callback when percent is above the last reported value
func (reporter *progressReporter) report(percent int) {
	if reporter == nil || reporter.callback == nil {
		return
	}
	for {
		last := reporter.last.Load()
		if int64(percent) <= last {
			return
		}
		if reporter.last.CompareAndSwap(last, int64(percent)) {
			reporter.callback(percent)
			return
		}
	}
}

func newLastPercent() *atomic.Int64 {
	last := &atomic.Int64{}
	last.Store(-1)
	return last
}
