// Package api serves a read-only JSON view of journal analytics and entries
// over HTTP. Handlers never mutate the store.
package api
