package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Freeeeeet/classbot/internal/repository"
	"github.com/Freeeeeet/classbot/internal/service"
	"github.com/Freeeeeet/classbot/internal/timetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var ist = time.FixedZone("IST", 5*3600+1800)

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		l, err := NewLogger(env)
		require.NoError(t, err)
		assert.NotNil(t, l)
	}
}

type fakePurger struct {
	cutoffs []time.Time
}

func (f *fakePurger) Purge(before time.Time) int {
	f.cutoffs = append(f.cutoffs, before)
	return 3
}

func TestSchedulerPurgesBeforeLocalMidnight(t *testing.T) {
	p := &fakePurger{}
	// 00:05 IST on Tuesday is still Monday in UTC
	now := time.Date(2025, time.September, 1, 18, 35, 0, 0, time.UTC)
	s, err := NewScheduler("5 0 * * *", ist, p, timetable.FixedClock(now), zap.NewNop())
	require.NoError(t, err)

	s.purgeStale()
	require.Len(t, p.cutoffs, 1)
	assert.True(t, p.cutoffs[0].Equal(time.Date(2025, time.September, 2, 0, 0, 0, 0, ist)))

	s.Start()
	s.Stop(context.Background())
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	_, err := NewScheduler("every day", ist, &fakePurger{}, timetable.FixedClock(time.Now()), zap.NewNop())
	assert.Error(t, err)
}

func TestKeepAlive(t *testing.T) {
	k := NewKeepAlive(":0", func(context.Context) HealthStats {
		return HealthStats{PendingReminders: 4, RegisteredUsers: 12, Groups: []string{"Group-7"}}
	}, zap.NewNop())

	resp, err := k.app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "OK", string(body))

	resp, err = k.app.Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var health struct {
		Status           string   `json:"status"`
		PendingReminders int      `json:"pending_reminders"`
		RegisteredUsers  int      `json:"registered_users"`
		Groups           []string `json:"groups"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 4, health.PendingReminders)
	assert.Equal(t, 12, health.RegisteredUsers)
	assert.Equal(t, []string{"Group-7"}, health.Groups)

	resp, err = k.app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

type fakePending int

func (f fakePending) Pending() int { return int(f) }

type failingCounter struct{}

func (failingCounter) CountUsers(context.Context) (int, error) {
	return 0, errors.New("store down")
}

func TestHealthStatsCountsRegisteredUsers(t *testing.T) {
	ctx := context.Background()
	reg, err := timetable.DefaultRegistry(ist)
	require.NoError(t, err)

	users, err := service.NewUserService(repository.NewMemoryGroupStore(), reg, "Group-7", zap.NewNop())
	require.NoError(t, err)
	_, err = users.Register(ctx, 1)
	require.NoError(t, err)
	_, err = users.Register(ctx, 2)
	require.NoError(t, err)

	s := healthStats(fakePending(3), users, reg, zap.NewNop())(ctx)
	assert.Equal(t, HealthStats{PendingReminders: 3, RegisteredUsers: 2, Groups: []string{"Group-7"}}, s)

	s = healthStats(fakePending(0), failingCounter{}, reg, zap.NewNop())(ctx)
	assert.Equal(t, -1, s.RegisteredUsers)
}

func TestMigratorSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := repository.OpenSQLite(ctx, filepath.Join(t.TempDir(), "classbot.db"))
	require.NoError(t, err)
	defer db.Close()

	mg, err := NewMigrator(db, DialectSQLite, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, mg.Run(ctx))
	require.NoError(t, mg.Run(ctx), "second run is a no-op")

	version, err := mg.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)
	require.NoError(t, mg.Close())

	store := repository.NewSQLiteGroupStore(db)
	require.NoError(t, store.Set(ctx, 1, "Group-7"))
}
