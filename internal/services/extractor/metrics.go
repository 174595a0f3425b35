package extractor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	extractions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gotikameta_extractions_total",
		Help: "The total number of tika extractions",
	}, []string{"mode", "option"})
	extractionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gotikameta_extraction_errors_total",
		Help: "The total number of failed tika extractions",
	}, []string{"mode"})
)
