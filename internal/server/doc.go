// Package server runs the local control API.
//
// The server binds its listener synchronously in Start so address errors
// surface at startup, serves in the background and shuts down gracefully
// in Stop.
package server
