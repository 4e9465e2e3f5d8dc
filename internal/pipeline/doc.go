// Package pipeline drives a video from discovery to a persisted place.
//
// Each video moves through fixed stages in order: the idempotency ledger,
// the channel allow-list, the description gate, the place search, the
// thumbnail check, and persistence. Processing is strictly sequential; the
// external providers are rate limited and a courtesy delay between videos is
// the only throttle.
package pipeline
