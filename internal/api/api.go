// Package api the common parts of all api versions
package api

// APIKeyHeaderKey in this header the right api key should be inserted
const APIKeyHeaderKey = "apikey"

// FilenameKey in this header the filename of an uploaded file is transported
const FilenameKey = "filename"

// MetricsEndpoint endpoint of the prometheus metrics
const MetricsEndpoint = "/metrics"
