package catalog

import (
	"sync"

	"github.com/radieske/sports-predict-platform/pkg/models"
)

// Catalog mantém o conjunto de jogos da sessão em memória.
// Leituras durante um tick do simulador enxergam o estado pré ou pós-tick,
// nunca um jogo parcialmente atualizado: toda mutação troca a slice inteira
// sob lock (copy-on-write).
type Catalog struct {
	mu    sync.RWMutex
	games []models.Game
}

// New cria um catálogo com o conteúdo inicial informado.
func New(games []models.Game) *Catalog {
	c := &Catalog{}
	c.ReplaceAll(games)
	return c
}

// List devolve os jogos em ordem de inserção estável.
// A slice retornada é uma cópia; o chamador pode iterar sem lock.
func (c *Catalog) List() []models.Game {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Game, len(c.games))
	copy(out, c.games)
	return out
}

// Get devolve o jogo pelo id.
func (c *Catalog) Get(id string) (models.Game, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.games {
		if c.games[i].ID == id {
			return c.games[i], true
		}
	}
	return models.Game{}, false
}

// Len devolve a quantidade de jogos.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.games)
}

// ReplaceAll substitui o catálogo inteiro de forma atômica (last-writer-wins
// na granularidade do catálogo, sem merge campo a campo).
func (c *Catalog) ReplaceAll(games []models.Game) {
	next := make([]models.Game, len(games))
	copy(next, games)
	c.mu.Lock()
	c.games = next
	c.mu.Unlock()
}
