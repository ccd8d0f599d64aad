// Package coordinator keeps the latest Klokku snapshot of one account.
//
// A [Coordinator] authenticates once, then refreshes on demand or on the
// ticks of a [Poller]. Every refresh reads the current event and the
// available options concurrently and always waits for both. A failed
// current-event read still yields a snapshot without a selection; a failed
// options read keeps the previous snapshot and returns a *[FetchError].
//
// Snapshots are replaced whole and handed to subscribers as copies, so no
// consumer can observe or cause a partial update.
package coordinator
