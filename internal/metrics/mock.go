package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	statChanges      map[string]int
	substitutions    int
	openSessions     int
	statisticsSaved  int
	saveFailures     int
	saveDurations    []float64
	eventsProcessed  map[string]int
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		statChanges:     make(map[string]int),
		eventsProcessed: make(map[string]int),
	}
}

func (m *Mock) IncStatChanges(direction string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statChanges[direction]++
}

func (m *Mock) IncSubstitutions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.substitutions++
}

func (m *Mock) SetOpenSessions(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openSessions = n
}

func (m *Mock) IncStatisticsSaved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statisticsSaved++
}

func (m *Mock) IncStatisticsSaveFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveFailures++
}

func (m *Mock) ObserveSaveDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveDurations = append(m.saveDurations, duration)
}

func (m *Mock) IncEventsProcessed(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsProcessed[event]++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// StatChanges returns how often IncStatChanges was called for a direction.
func (m *Mock) StatChanges(direction string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statChanges[direction]
}

// Substitutions returns the number of times IncSubstitutions was called.
func (m *Mock) Substitutions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.substitutions
}

// OpenSessions returns the last value passed to SetOpenSessions.
func (m *Mock) OpenSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.openSessions
}

// StatisticsSaved returns the number of times IncStatisticsSaved was called.
func (m *Mock) StatisticsSaved() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statisticsSaved
}

// SaveFailures returns the number of times IncStatisticsSaveFailed was called.
func (m *Mock) SaveFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveFailures
}

// EventsProcessed returns how often IncEventsProcessed was called for an event.
func (m *Mock) EventsProcessed(event string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsProcessed[event]
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
