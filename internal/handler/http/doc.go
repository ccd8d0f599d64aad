// Package http implements the local control API of the bridge.
//
// It exposes the coordinator status, the selection control and the
// recorded history over a small JSON API, plus the Prometheus endpoint.
// Every request gets a trace id and an access log line.
package http
