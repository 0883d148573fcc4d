package live

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/team"
	"github.com/mauv0809/courtside/internal/tracker"
	"github.com/mauv0809/courtside/internal/volleyball"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockStore is a testify mock of Store.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetGame(gameSlug string) (*team.GameWithRecords, error) {
	args := m.Called(gameSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*team.GameWithRecords), args.Error(1)
}

func (m *mockStore) SaveStatistics(gameID string, records []volleyball.Record) error {
	args := m.Called(gameID, records)
	return args.Error(0)
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	views  []tracker.View
	closed []string
}

func (b *recordingBroadcaster) Broadcast(sessionID string, view tracker.View) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.views = append(b.views, view)
}

func (b *recordingBroadcaster) Close(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = append(b.closed, sessionID)
}

func (b *recordingBroadcaster) Closed() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.closed...)
}

func testGame() *team.GameWithRecords {
	return &team.GameWithRecords{
		Game: team.Game{ID: "g1", Slug: "cup-final", TeamSlug: "sharks", Title: "Cup final"},
		Records: []volleyball.Record{
			{ID: "r1", Name: "Ada"},
			{ID: "r2", Name: "Bob"},
			{ID: "r3", Name: "Cid"},
		},
	}
}

type fixture struct {
	manager     *Manager
	store       *mockStore
	pubsub      *pubsub.MockPubSubClient
	metrics     *metrics.Mock
	broadcaster *recordingBroadcaster
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:       &mockStore{},
		pubsub:      pubsub.NewMock("TEST"),
		metrics:     metrics.NewMock(),
		broadcaster: &recordingBroadcaster{},
	}
	f.manager = NewManager(f.store, f.pubsub, f.metrics, f.broadcaster)
	return f
}

func (f *fixture) open(t *testing.T) *Session {
	t.Helper()
	f.store.On("GetGame", "cup-final").Return(testGame(), nil).Once()
	s, err := f.manager.Open(context.Background(), "cup-final")
	require.NoError(t, err)
	return s
}

func slot(i int) *int { return &i }

// placeAndCount puts player into slot i and records one key for them.
func (f *fixture) placeAndCount(t *testing.T, s *Session, i int, player string, key volleyball.StatKey) {
	t.Helper()
	_, err := f.manager.SelectSlot(s.ID, slot(i))
	require.NoError(t, err)
	_, err = f.manager.SelectBench(s.ID, player)
	require.NoError(t, err)
	view, err := f.manager.Substitute(s.ID)
	require.NoError(t, err)
	require.Equal(t, player, view.Slots[i].PlayerID)
	view, err = f.manager.Increment(s.ID, key)
	require.NoError(t, err)
	require.True(t, view.Dirty)
}

func TestOpen(t *testing.T) {
	f := newFixture(t)
	s := f.open(t)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "g1", s.Game.ID)
	assert.Equal(t, []string{"r1", "r2", "r3"}, s.Tracker.BenchIDs())
	assert.Equal(t, 1, f.metrics.OpenSessions())

	got, err := f.manager.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	f.store.AssertExpectations(t)
}

func TestOpenUnknownGame(t *testing.T) {
	f := newFixture(t)
	f.store.On("GetGame", "nope").Return(nil, team.ErrNotFound)

	_, err := f.manager.Open(context.Background(), "nope")
	assert.ErrorIs(t, err, team.ErrNotFound)
	assert.Equal(t, 0, f.manager.Len())
}

func TestGetUnknownSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.manager.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = f.manager.Increment("missing", volleyball.Kills)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMutationsBroadcast(t *testing.T) {
	f := newFixture(t)
	s := f.open(t)

	_, err := f.manager.SelectSlot(s.ID, slot(0))
	require.NoError(t, err)
	_, err = f.manager.SelectBench(s.ID, "r2")
	require.NoError(t, err)
	view, err := f.manager.Substitute(s.ID)
	require.NoError(t, err)
	assert.Equal(t, "r2", view.Slots[0].PlayerID)
	assert.Equal(t, 1, f.metrics.Substitutions())

	view, err = f.manager.Increment(s.ID, volleyball.Kills)
	require.NoError(t, err)
	require.NotNil(t, view.Occupant)
	assert.Equal(t, 1, view.Occupant.Kills)
	assert.True(t, view.Dirty)

	_, err = f.manager.Decrement(s.ID, volleyball.Kills)
	require.NoError(t, err)
	view, err = f.manager.Decrement(s.ID, volleyball.Kills)
	require.NoError(t, err)
	assert.Equal(t, 0, view.Occupant.Kills)
	assert.Equal(t, 1, f.metrics.StatChanges(metrics.DirectionIncrement))
	assert.Equal(t, 2, f.metrics.StatChanges(metrics.DirectionDecrement))

	_, err = f.manager.SelectSlot(s.ID, slot(6))
	assert.ErrorIs(t, err, tracker.ErrInvalidSlot)
	_, err = f.manager.Increment(s.ID, "bogus")
	assert.ErrorIs(t, err, volleyball.ErrUnknownStatKey)

	view, err = f.manager.SelectSlot(s.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, view.SelectedSlot)

	f.broadcaster.mu.Lock()
	defer f.broadcaster.mu.Unlock()
	assert.Len(t, f.broadcaster.views, 7)
}

func TestSave(t *testing.T) {
	t.Run("clean session does not write", func(t *testing.T) {
		f := newFixture(t)
		s := f.open(t)

		res, err := f.manager.Save(context.Background(), s.ID, false)
		require.NoError(t, err)
		assert.False(t, res.Saved)
		f.store.AssertNotCalled(t, "SaveStatistics", mock.Anything, mock.Anything)
		assert.Empty(t, f.pubsub.Calls())
	})

	t.Run("dirty session is persisted and announced", func(t *testing.T) {
		f := newFixture(t)
		s := f.open(t)
		f.placeAndCount(t, s, 2, "r1", volleyball.Digs)

		f.store.On("SaveStatistics", "g1", mock.MatchedBy(func(records []volleyball.Record) bool {
			return len(records) == 3 && records[0].ID == "r1" && records[0].Digs == 1
		})).Return(nil).Once()

		res, err := f.manager.Save(context.Background(), s.ID, false)
		require.NoError(t, err)
		assert.True(t, res.Saved)
		assert.False(t, res.View.Dirty)
		assert.False(t, s.Tracker.Dirty())
		assert.Equal(t, 1, f.metrics.StatisticsSaved())

		calls := f.pubsub.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, pubsub.EventStatisticsSaved, calls[0].Topic)
		event, ok := calls[0].Data.(pubsub.StatisticsSaved)
		require.True(t, ok)
		assert.Equal(t, "sharks", event.TeamSlug)
		f.store.AssertExpectations(t)
	})

	t.Run("dry run persists but does not publish", func(t *testing.T) {
		f := newFixture(t)
		s := f.open(t)
		f.placeAndCount(t, s, 0, "r3", volleyball.Kills)
		f.store.On("SaveStatistics", "g1", mock.Anything).Return(nil).Once()

		res, err := f.manager.Save(context.Background(), s.ID, true)
		require.NoError(t, err)
		assert.True(t, res.Saved)
		assert.Empty(t, f.pubsub.Calls())
	})

	t.Run("failure keeps session dirty", func(t *testing.T) {
		f := newFixture(t)
		s := f.open(t)
		f.placeAndCount(t, s, 0, "r1", volleyball.Kills)

		boom := errors.New("disk full")
		f.store.On("SaveStatistics", "g1", mock.Anything).Return(boom).Once()

		_, err := f.manager.Save(context.Background(), s.ID, false)
		assert.ErrorIs(t, err, boom)
		assert.True(t, s.Tracker.Dirty())
		assert.Equal(t, 1, f.metrics.SaveFailures())
		assert.Empty(t, f.pubsub.Calls())
	})

	t.Run("publish failure does not fail the save", func(t *testing.T) {
		f := newFixture(t)
		f.pubsub.SendMessageFunc = func(pubsub.EventType, any) error { return errors.New("offline") }
		s := f.open(t)
		f.placeAndCount(t, s, 0, "r1", volleyball.Kills)
		f.store.On("SaveStatistics", "g1", mock.Anything).Return(nil).Once()

		res, err := f.manager.Save(context.Background(), s.ID, false)
		require.NoError(t, err)
		assert.True(t, res.Saved)
		assert.False(t, s.Tracker.Dirty())
	})
}

func TestDiscardAndSweep(t *testing.T) {
	f := newFixture(t)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	f.manager.now = func() time.Time { return now }

	old := f.open(t)
	now = now.Add(20 * time.Minute)
	fresh := f.open(t)
	gone := f.open(t)

	assert.True(t, f.manager.Discard(gone.ID))
	assert.False(t, f.manager.Discard(gone.ID))
	assert.Equal(t, 2, f.manager.Len())

	now = now.Add(5 * time.Minute)
	assert.Equal(t, 1, f.manager.Sweep(10*time.Minute))

	_, err := f.manager.Get(old.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = f.manager.Get(fresh.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, f.metrics.OpenSessions())
	assert.Equal(t, []string{gone.ID, old.ID}, f.broadcaster.Closed())
}

func TestRunSweeperStops(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.manager.RunSweeper(ctx, time.Millisecond, time.Hour)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestRunSweeperRejectsNonPositiveDurations(t *testing.T) {
	f := newFixture(t)
	s := f.open(t)

	assert.NotPanics(t, func() {
		f.manager.RunSweeper(context.Background(), 0, time.Hour)
	})
	assert.NotPanics(t, func() {
		f.manager.RunSweeper(context.Background(), -time.Second, time.Hour)
	})
	f.manager.RunSweeper(context.Background(), time.Millisecond, 0)

	_, err := f.manager.Get(s.ID)
	assert.NoError(t, err)
}
