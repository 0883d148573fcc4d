package notifier

import (
	"sync"

	"github.com/mauv0809/courtside/internal/analytics"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendGameResultFunc            func(result GameResult, dryRun bool) error
	SendStatisticsSummaryFunc     func(summary StatisticsSummary, dryRun bool) error
	FormatLeaderboardResponseFunc func(teamSlug string, entries []analytics.LeaderboardEntry) (any, error)

	// Call records
	SendGameResultCalls        []GameResult
	SendStatisticsSummaryCalls []StatisticsSummary
	DryRunCalls                []bool
	LastLeaderboardEntries     []analytics.LeaderboardEntry
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendGameResultCalls = nil
	m.SendStatisticsSummaryCalls = nil
	m.DryRunCalls = nil
	m.LastLeaderboardEntries = nil
}

func (m *Mock) SendGameResult(result GameResult, dryRun bool) error {
	m.mu.Lock()
	m.SendGameResultCalls = append(m.SendGameResultCalls, result)
	m.DryRunCalls = append(m.DryRunCalls, dryRun)
	m.mu.Unlock()
	if m.SendGameResultFunc != nil {
		return m.SendGameResultFunc(result, dryRun)
	}
	return nil
}

func (m *Mock) SendStatisticsSummary(summary StatisticsSummary, dryRun bool) error {
	m.mu.Lock()
	m.SendStatisticsSummaryCalls = append(m.SendStatisticsSummaryCalls, summary)
	m.DryRunCalls = append(m.DryRunCalls, dryRun)
	m.mu.Unlock()
	if m.SendStatisticsSummaryFunc != nil {
		return m.SendStatisticsSummaryFunc(summary, dryRun)
	}
	return nil
}

func (m *Mock) FormatLeaderboardResponse(teamSlug string, entries []analytics.LeaderboardEntry) (any, error) {
	m.mu.Lock()
	m.LastLeaderboardEntries = entries
	m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		return m.FormatLeaderboardResponseFunc(teamSlug, entries)
	}
	return nil, nil
}
