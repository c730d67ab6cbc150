package simulator

import (
	"math/rand"
	"time"
)

// Option aplica uma opção de configuração ao Simulator.
type Option func(*Simulator)

// WithInterval define a cadência do tick.
func WithInterval(d time.Duration) Option {
	return func(s *Simulator) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithProbability define a chance de um jogo em andamento avançar num tick.
func WithProbability(p float64) Option {
	return func(s *Simulator) {
		if p >= 0 && p <= 1 {
			s.prob = p
		}
	}
}

// WithRand injeta a fonte de aleatoriedade (determinismo em teste).
func WithRand(r *rand.Rand) Option {
	return func(s *Simulator) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithTickHook registra callbacks de métricas por tick e por jogo avançado.
func WithTickHook(onTick, onAdvanced func()) Option {
	return func(s *Simulator) {
		s.onTick = onTick
		s.onAdvanced = onAdvanced
	}
}
