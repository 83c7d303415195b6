package http

// RouterConfig contains all dependencies needed to create the bridge router.
type RouterConfig struct {
	// Core dependencies
	Actions Actions
	Trigger Trigger

	// SearchMatch is the match mode the trigger was built with
	SearchMatch bool

	// Recent notifications (optional)
	Notifications NotificationFeed

	// Contribution outbox (optional)
	Outbox Outbox

	// Health checks, keyed by check name
	Checks map[string]Pinger

	// Application info
	Version string
}
