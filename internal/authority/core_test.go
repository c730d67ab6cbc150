package authority_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/sports-predict-platform/internal/authority"
	"github.com/radieske/sports-predict-platform/internal/simulator"
	"github.com/radieske/sports-predict-platform/internal/snapshot"
	"github.com/radieske/sports-predict-platform/pkg/contracts/events"
	"github.com/radieske/sports-predict-platform/pkg/models"
)

type fakePublisher struct {
	published []events.PredictionPlaced
}

func (f *fakePublisher) PublishPredictionPlaced(_ context.Context, e events.PredictionPlaced) error {
	f.published = append(f.published, e)
	return nil
}

func newCore(t *testing.T) (*authority.Core, *snapshot.Store, *fakePublisher) {
	t.Helper()
	store := snapshot.NewStore(snapshot.NewFileBlob(t.TempDir()), "appData")
	publ := &fakePublisher{}
	core := authority.NewCore(zap.NewNop(), store, publ)
	require.NoError(t, core.Load(context.Background()))
	return core, store, publ
}

func TestPlacePredictionPersistsAndPublishes(t *testing.T) {
	core, store, publ := newCore(t)
	ctx := context.Background()

	p, newBalance, err := core.PlacePrediction(ctx, "game1", "LAL", 40, "user1")
	require.NoError(t, err)
	assert.Equal(t, 60.00, newBalance)

	// persistência síncrona: snapshot já reflete o palpite
	snap, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 60.00, snap.User.Balance)
	require.Len(t, snap.User.Predictions, 1)
	assert.Equal(t, p.ID, snap.User.Predictions[0].ID)

	require.Len(t, publ.published, 1)
	ev := publ.published[0]
	assert.Equal(t, p.ID, ev.PredictionID)
	assert.Equal(t, "user1", ev.UserID)
	assert.Equal(t, 40.0, ev.Amount)
	assert.Equal(t, 60.0, ev.NewBalance)
}

func TestPlacePredictionRejectedPublishesNothing(t *testing.T) {
	core, _, publ := newCore(t)

	_, _, err := core.PlacePrediction(context.Background(), "game4", "DEN", 10, "user1")
	require.Error(t, err)
	assert.Empty(t, publ.published)
}

func TestCommitGamesPersists(t *testing.T) {
	core, store, _ := newCore(t)
	ctx := context.Background()

	next := []models.Game{{ID: "gX", Status: models.StatusScheduled}}
	require.NoError(t, core.CommitGames(ctx, next))

	snap, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, snap.Games, 1)
	assert.Equal(t, "gX", snap.Games[0].ID)
}

func TestSimulatorTickAgainstCore(t *testing.T) {
	core, store, _ := newCore(t)
	ctx := context.Background()

	before := core.Games()
	sim := simulator.New(zap.NewNop(), core,
		simulator.WithProbability(1),
		simulator.WithRand(rand.New(rand.NewSource(11))),
	)
	require.NoError(t, sim.Tick(ctx))

	after := core.Games()
	require.Len(t, after, len(before))
	for i := range after {
		if before[i].Status != models.StatusInProgress {
			// fora de inProgress nada muda
			assert.Equal(t, before[i], after[i])
		}
	}

	// o tick só termina com o snapshot gravado
	snap, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, after, snap.Games)
}
