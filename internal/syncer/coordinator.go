package syncer

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/radieske/sports-predict-platform/internal/catalog"
	"github.com/radieske/sports-predict-platform/internal/ledger"
	"github.com/radieske/sports-predict-platform/internal/remote"
	"github.com/radieske/sports-predict-platform/internal/snapshot"
	"github.com/radieske/sports-predict-platform/pkg/models"
)

// AuthorityAPI é o que o coordinator precisa do cliente remoto.
type AuthorityAPI interface {
	FetchGames(ctx context.Context) ([]models.Game, error)
	SubmitPrediction(ctx context.Context, gameID, pick string, amount float64, userID string) (remote.SubmitResult, error)
	FetchUser(ctx context.Context, id string) (models.User, error)
}

// Coordinator orquestra refresh e colocação de palpites no lado cliente:
// tenta a autoridade primeiro e cai para o estado local quando ela está
// indisponível, persistindo a réplica após cada mutação aceita.
//
// Um único mutex serializa todas as operações da sessão (single writer por
// usuário): um PlaceWager nunca intercala com um RefreshGames.
type Coordinator struct {
	log     *zap.Logger
	api     AuthorityAPI
	replica *snapshot.Store

	mu      sync.Mutex
	catalog *catalog.Catalog
	ledger  *ledger.Ledger
	userID  string
}

func New(log *zap.Logger, api AuthorityAPI, replica *snapshot.Store) *Coordinator {
	return &Coordinator{log: log, api: api, replica: replica}
}

// Load faz o cold start: adota a réplica persistida (ou o seed embutido,
// persistindo-o como primeira escrita). Nunca consulta a autoridade;
// dados remotos só entram via RefreshGames/RefreshUser explícitos.
func (c *Coordinator) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.replica.LoadOrSeed(ctx)
	if err != nil {
		return err
	}
	c.catalog = catalog.New(snap.Games)
	c.ledger = ledger.New(snap.User)
	c.userID = snap.User.ID
	c.log.Info("replica loaded", zap.Int("games", len(snap.Games)), zap.String("user", c.userID))
	return nil
}

// Games lista o catálogo corrente.
func (c *Coordinator) Games() []models.Game {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog.List()
}

// Game busca um jogo pelo id.
func (c *Coordinator) Game(id string) (models.Game, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalog.Get(id)
}

// User devolve o estado corrente do usuário.
func (c *Coordinator) User() models.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ledger.User()
}

// RefreshGames substitui o catálogo inteiro pela leitura autoritativa e
// persiste. Falha do cliente remoto é não-fatal: o catálogo fica intocado
// e a operação retorna nil — a sessão continua utilizável offline.
func (c *Coordinator) RefreshGames(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	games, err := c.api.FetchGames(ctx)
	if err != nil {
		c.log.Warn("authority unavailable, keeping local catalog", zap.Error(err))
		return nil
	}

	c.catalog.ReplaceAll(games)
	c.persistLocked(ctx)

	// conectividade comprovada: oportunidade de drenar o outbox
	c.syncPendingLocked(ctx)
	return nil
}

// RefreshUser adota a visão autoritativa do usuário; mesma política do
// RefreshGames: falha remota só gera aviso.
func (c *Coordinator) RefreshUser(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	user, err := c.api.FetchUser(ctx, c.userID)
	if err != nil {
		c.log.Warn("authority unavailable, keeping local user", zap.Error(err))
		return nil
	}
	c.ledger.AdoptUser(user)
	c.persistLocked(ctx)
	return nil
}

// PlaceWager tenta a submissão remota e, se a autoridade falhar por
// qualquer motivo, aplica o palpite localmente. A operação só falha para
// o chamador quando os dois caminhos rejeitam.
func (c *Coordinator) PlaceWager(ctx context.Context, gameID, pick string, amount float64) (models.Prediction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, err := c.api.SubmitPrediction(ctx, gameID, pick, amount, c.userID)
	if err == nil {
		// caminho remoto: saldo vem pronto da autoridade
		c.ledger.AdoptRemote(res.Prediction, res.NewBalance)
		c.persistLocked(ctx)
		return res.Prediction, nil
	}

	c.log.Warn("authority submit failed, applying wager locally", zap.Error(err))

	p, lerr := c.ledger.PlaceWager(c.catalog, gameID, pick, amount)
	if lerr != nil {
		return models.Prediction{}, lerr
	}
	c.ledger.FlagPendingSync(p.ID)
	p.PendingSync = true
	c.persistLocked(ctx)
	return p, nil
}

// SyncPending replica para a autoridade os palpites aceitos localmente
// durante indisponibilidade (outbox replay).
func (c *Coordinator) SyncPending(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncPendingLocked(ctx)
	return nil
}

// syncPendingLocked drena o outbox em ordem de colocação. Em caso de
// divergência a autoridade vence no saldo; falha de transporte interrompe
// e mantém o restante na fila.
func (c *Coordinator) syncPendingLocked(ctx context.Context) {
	pending := c.ledger.PendingSync()
	if len(pending) == 0 {
		return
	}

	replayed := 0
	for _, p := range pending {
		res, err := c.api.SubmitPrediction(ctx, p.GameID, p.Pick, p.Amount, c.userID)
		if err == nil {
			c.ledger.MarkSynced(p.ID, res.NewBalance)
			replayed++
			continue
		}
		if errors.Is(err, remote.ErrApplication) {
			// autoridade rejeitou o replay: mantém o registro local mas
			// resolve o saldo pela visão autoritativa
			balance := c.ledger.Balance()
			if u, uerr := c.api.FetchUser(ctx, c.userID); uerr == nil {
				balance = u.Balance
			}
			c.ledger.MarkSynced(p.ID, balance)
			c.log.Warn("replay rejected by authority", zap.String("prediction_id", p.ID), zap.Error(err))
			replayed++
			continue
		}
		c.log.Warn("replay interrupted, authority unreachable", zap.Int("remaining", len(pending)-replayed), zap.Error(err))
		break
	}

	if replayed > 0 {
		c.persistLocked(ctx)
	}
}

// persistLocked grava o snapshot {games, user} na réplica. Persistência é
// best-effort: falha é logada e não desfaz a mutação em memória.
func (c *Coordinator) persistLocked(ctx context.Context) {
	snap := &models.Snapshot{Games: c.catalog.List(), User: c.ledger.User()}
	if err := c.replica.Save(ctx, snap); err != nil {
		c.log.Error("replica save failed", zap.Error(err))
	}
}
