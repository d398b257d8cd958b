package dberrors

import "github.com/prometheus/client_golang/prometheus"

// ResetTable drops the installed table so that tests can exercise Init again
func ResetTable() {
	tableMut.Lock()
	defer tableMut.Unlock()
	installed.Store(nil)
}

// ClassifiedCounter exposes the per-category counter
func ClassifiedCounter(c string) prometheus.Counter {
	return classifiedCounter.WithLabelValues(c)
}
