package dberrors

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var classifiedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "mysqlerr_classified_errors_total",
	Help: "Number of database errors classified, by category",
}, []string{"category"})
