package metrics

// Metrics defines the interface for collecting application metrics.
// Prometheus backs the production implementation.
type Metrics interface {
	IncStatChanges(direction string)
	IncSubstitutions()
	SetOpenSessions(n int)
	IncStatisticsSaved()
	IncStatisticsSaveFailed()
	ObserveSaveDuration(duration float64)
	IncEventsProcessed(event string)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// UsageStore persists named usage counters across restarts.
type UsageStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
