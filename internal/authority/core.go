package authority

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/sports-predict-platform/internal/catalog"
	"github.com/radieske/sports-predict-platform/internal/ledger"
	"github.com/radieske/sports-predict-platform/internal/snapshot"
	"github.com/radieske/sports-predict-platform/pkg/contracts/events"
	"github.com/radieske/sports-predict-platform/pkg/models"
)

// Publisher emite eventos de palpite aceito (Kafka em produção).
type Publisher interface {
	PublishPredictionPlaced(ctx context.Context, e events.PredictionPlaced) error
}

// Core é o estado canônico da autoridade: catálogo + ledger atrás de um
// mutex único, com persistência síncrona no store durável. O simulador e
// os handlers HTTP só mutam o estado por aqui.
type Core struct {
	log   *zap.Logger
	store *snapshot.Store
	publ  Publisher // opcional

	mu      sync.Mutex
	catalog *catalog.Catalog
	ledger  *ledger.Ledger
}

func NewCore(log *zap.Logger, store *snapshot.Store, publ Publisher) *Core {
	return &Core{log: log, store: store, publ: publ}
}

// Load carrega o snapshot durável (ou o seed) para a memória.
func (c *Core) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.store.LoadOrSeed(ctx)
	if err != nil {
		return err
	}
	c.catalog = catalog.New(snap.Games)
	c.ledger = ledger.New(snap.User)
	c.log.Info("authority state loaded", zap.Int("games", len(snap.Games)), zap.String("user", snap.User.ID))
	return nil
}

// Games lista o catálogo canônico.
func (c *Core) Games() []models.Game {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog.List()
}

// Game busca um jogo pelo id.
func (c *Core) Game(id string) (models.Game, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog.Get(id)
}

// User devolve o usuário da sessão; ok=false quando o id não confere.
func (c *Core) User(id string) (models.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := c.ledger.User()
	if u.ID != id {
		return models.User{}, false
	}
	return u, true
}

// PlacePrediction valida e aplica um palpite contra o estado canônico,
// persiste o snapshot e publica o evento. A mutação só é dada como
// completa após a escrita; falha de persistência é logada e não desfaz a
// mutação em memória.
func (c *Core) PlacePrediction(ctx context.Context, gameID, pick string, amount float64, userID string) (models.Prediction, float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := c.ledger.PlaceWager(c.catalog, gameID, pick, amount)
	if err != nil {
		return models.Prediction{}, 0, err
	}
	newBalance := c.ledger.Balance()

	if err := c.persistLocked(ctx); err != nil {
		c.log.Error("authority snapshot save failed", zap.Error(err))
	}

	if c.publ != nil {
		// publicação é best-effort; o palpite já foi aceito
		if err := c.publ.PublishPredictionPlaced(ctx, events.PredictionPlaced{
			PredictionID: p.ID,
			UserID:       userID,
			GameID:       p.GameID,
			Pick:         p.Pick,
			Amount:       p.Amount,
			NewBalance:   newBalance,
			TsUnixMs:     time.Now().UnixMilli(),
		}); err != nil {
			c.log.Warn("prediction_placed publish failed", zap.Error(err))
		}
	}

	return p, newBalance, nil
}

// CommitGames troca o catálogo inteiro e persiste; usado pelo simulador.
// Um tick só é considerado completo quando a escrita termina.
func (c *Core) CommitGames(ctx context.Context, games []models.Game) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.catalog.ReplaceAll(games)
	if err := c.persistLocked(ctx); err != nil {
		return fmt.Errorf("persist after tick: %w", err)
	}
	return nil
}

func (c *Core) persistLocked(ctx context.Context) error {
	snap := &models.Snapshot{Games: c.catalog.List(), User: c.ledger.User()}
	return c.store.Save(ctx, snap)
}
