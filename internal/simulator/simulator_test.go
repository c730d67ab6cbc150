package simulator

import (
	"context"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/sports-predict-platform/pkg/models"
)

type fakeAuthority struct {
	games   []models.Game
	commits [][]models.Game
}

func (f *fakeAuthority) Games() []models.Game {
	out := make([]models.Game, len(f.games))
	copy(out, f.games)
	return out
}

func (f *fakeAuthority) CommitGames(_ context.Context, games []models.Game) error {
	f.games = games
	f.commits = append(f.commits, games)
	return nil
}

func intp(v int) *int { return &v }

func fixture() []models.Game {
	return []models.Game{
		{ID: "g1", Status: models.StatusScheduled},
		{
			ID: "g2", Status: models.StatusInProgress, Period: "Q2", Clock: "5:31",
			HomeTeam: models.Team{Abbreviation: "BOS", Score: intp(40)},
			AwayTeam: models.Team{Abbreviation: "MIA", Score: intp(38)},
		},
		{
			ID: "g3", Status: models.StatusFinal, Winner: "DEN",
			HomeTeam: models.Team{Abbreviation: "PHX", Score: intp(101)},
			AwayTeam: models.Team{Abbreviation: "DEN", Score: intp(112)},
		},
	}
}

var clockRe = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

func TestTickOnlyTouchesInProgress(t *testing.T) {
	auth := &fakeAuthority{games: fixture()}
	sim := New(zap.NewNop(), auth,
		WithProbability(1),
		WithRand(rand.New(rand.NewSource(7))),
	)

	require.NoError(t, sim.Tick(context.Background()))
	require.Len(t, auth.commits, 1)

	// scheduled e final ficam bit a bit iguais
	assert.Equal(t, fixture()[0], auth.games[0])
	assert.Equal(t, fixture()[2], auth.games[2])

	g := auth.games[1]
	assert.GreaterOrEqual(t, *g.HomeTeam.Score, 40)
	assert.LessOrEqual(t, *g.HomeTeam.Score, 42)
	assert.GreaterOrEqual(t, *g.AwayTeam.Score, 38)
	assert.LessOrEqual(t, *g.AwayTeam.Score, 40)
	assert.Equal(t, models.StatusInProgress, g.Status)
}

func TestTickClockFormat(t *testing.T) {
	auth := &fakeAuthority{games: fixture()}
	sim := New(zap.NewNop(), auth,
		WithProbability(1),
		WithRand(rand.New(rand.NewSource(42))),
	)

	for i := 0; i < 50; i++ {
		require.NoError(t, sim.Tick(context.Background()))
		clock := auth.games[1].Clock
		require.Regexp(t, clockRe, clock)

		parts := strings.Split(clock, ":")
		minutes, err := strconv.Atoi(parts[0])
		require.NoError(t, err)
		seconds, err := strconv.Atoi(parts[1])
		require.NoError(t, err)
		assert.LessOrEqual(t, minutes, 11)
		assert.Less(t, seconds, 60)
	}
}

func TestTickZeroProbabilityCommitsNothing(t *testing.T) {
	auth := &fakeAuthority{games: fixture()}
	sim := New(zap.NewNop(), auth,
		WithProbability(0),
		WithRand(rand.New(rand.NewSource(1))),
	)

	require.NoError(t, sim.Tick(context.Background()))
	assert.Empty(t, auth.commits)
	assert.Equal(t, fixture(), auth.games)
}

func TestTickStartsScoreFromZeroWhenMissing(t *testing.T) {
	auth := &fakeAuthority{games: []models.Game{
		{ID: "g1", Status: models.StatusInProgress, Clock: "12:00"},
	}}
	sim := New(zap.NewNop(), auth,
		WithProbability(1),
		WithRand(rand.New(rand.NewSource(3))),
	)

	require.NoError(t, sim.Tick(context.Background()))

	g := auth.games[0]
	require.NotNil(t, g.HomeTeam.Score)
	require.NotNil(t, g.AwayTeam.Score)
	assert.GreaterOrEqual(t, *g.HomeTeam.Score, 0)
	assert.LessOrEqual(t, *g.HomeTeam.Score, 2)
}

func TestTickHooks(t *testing.T) {
	auth := &fakeAuthority{games: fixture()}
	ticks, advanced := 0, 0
	sim := New(zap.NewNop(), auth,
		WithProbability(1),
		WithRand(rand.New(rand.NewSource(5))),
		WithTickHook(func() { ticks++ }, func() { advanced++ }),
	)

	require.NoError(t, sim.Tick(context.Background()))
	assert.Equal(t, 1, ticks)
	assert.Equal(t, 1, advanced) // só g2 está em andamento
}
