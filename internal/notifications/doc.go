// Package notifications pushes run lifecycle events to an ntfy topic.
package notifications
