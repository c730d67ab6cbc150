package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/sports-predict-platform/pkg/models"
)

// Authority é a visão que o simulador tem do estado autoritativo: leitura
// dos jogos e troca atômica do catálogo com persistência síncrona.
type Authority interface {
	Games() []models.Game
	CommitGames(ctx context.Context, games []models.Game) error
}

// Simulator avança placares e relógio dos jogos em andamento num intervalo
// fixo. É uma simulação sem memória, não um feed real: cada tick sorteia
// deltas independentes, sem contagem regressiva monotônica de relógio.
// Só jogos com status inProgress são tocados; transições de status ficam
// fora daqui.
type Simulator struct {
	log  *zap.Logger
	auth Authority

	interval time.Duration
	prob     float64
	rng      *rand.Rand

	onTick     func()
	onAdvanced func()
}

// Defaults de referência: tick de 30s, 30% de chance de avanço por jogo.
const (
	defaultInterval = 30 * time.Second
	defaultProb     = 0.3

	maxScoreDelta = 2  // incremento de placar 0..2
	maxClockMin   = 11 // minutos do relógio 0..11
)

func New(log *zap.Logger, auth Authority, opts ...Option) *Simulator {
	s := &Simulator{
		log:      log,
		auth:     auth,
		interval: defaultInterval,
		prob:     defaultProb,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run executa o loop de ticks até o contexto ser cancelado.
func (s *Simulator) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("simulator running", zap.Duration("interval", s.interval), zap.Float64("probability", s.prob))

	for {
		select {
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				s.log.Warn("simulator tick failed", zap.Error(err))
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Tick aplica um passo da simulação. O catálogo novo substitui o antigo de
// uma vez só: leitores concorrentes enxergam o estado pré ou pós-tick.
// O tick só é considerado completo após a persistência do snapshot.
func (s *Simulator) Tick(ctx context.Context) error {
	if s.onTick != nil {
		s.onTick()
	}

	games := s.auth.Games()
	advanced := 0
	for i := range games {
		if games[i].Status != models.StatusInProgress {
			continue
		}
		if s.rng.Float64() >= s.prob {
			continue
		}
		s.advance(&games[i])
		advanced++
		if s.onAdvanced != nil {
			s.onAdvanced()
		}
	}

	if advanced == 0 {
		return nil
	}

	if err := s.auth.CommitGames(ctx, games); err != nil {
		return fmt.Errorf("commit games: %w", err)
	}
	s.log.Debug("scores advanced", zap.Int("games", advanced))
	return nil
}

// advance incrementa os placares e sorteia um relógio novo "m:ss".
func (s *Simulator) advance(g *models.Game) {
	home := scoreOf(g.HomeTeam.Score) + s.rng.Intn(maxScoreDelta+1)
	away := scoreOf(g.AwayTeam.Score) + s.rng.Intn(maxScoreDelta+1)
	g.HomeTeam.Score = &home
	g.AwayTeam.Score = &away

	minutes := s.rng.Intn(maxClockMin + 1)
	seconds := s.rng.Intn(60)
	g.Clock = fmt.Sprintf("%d:%02d", minutes, seconds)
}

func scoreOf(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
