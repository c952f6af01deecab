// Package logkey holds the structured log attribute keys shared across the
// service so log queries stay consistent.
package logkey

const (
	TraceID = "TRACE ID"
	ERROR   = "ERROR"
)
