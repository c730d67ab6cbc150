package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/radieske/sports-predict-platform/pkg/models"
)

// GameSource é a visão mínima do catálogo que o ledger precisa para
// validar um palpite.
type GameSource interface {
	Get(id string) (models.Game, bool)
}

// Ledger é o agregado de saldo, histórico de palpites e estatísticas de um
// usuário. Não é thread-safe: toda mutação e leitura deve ser serializada
// pelo dono (o coordinator no cliente, o core na autoridade).
type Ledger struct {
	user models.User
}

// New cria um ledger a partir do estado persistido do usuário.
func New(user models.User) *Ledger {
	l := &Ledger{user: user}
	l.user.Predictions = append([]models.Prediction(nil), user.Predictions...)
	return l
}

// User devolve uma cópia do estado atual do usuário.
func (l *Ledger) User() models.User {
	out := l.user
	out.Predictions = append([]models.Prediction(nil), l.user.Predictions...)
	return out
}

// Balance devolve o saldo corrente.
func (l *Ledger) Balance() float64 { return l.user.Balance }

// PlaceWager valida e aplica um palpite contra o estado em memória.
// Pré-condições na ordem: jogo existe, jogo não encerrado, valor positivo,
// saldo suficiente e, por fim, ausência de palpite pendente para o mesmo
// jogo. A primeira falha vence.
func (l *Ledger) PlaceWager(games GameSource, gameID, pick string, amount float64) (models.Prediction, error) {
	game, ok := games.Get(gameID)
	if !ok {
		return models.Prediction{}, ErrGameNotFound
	}
	if game.Status == models.StatusFinal {
		return models.Prediction{}, ErrGameClosed
	}
	if amount <= 0 {
		return models.Prediction{}, ErrInvalidAmount
	}
	if amount > l.user.Balance {
		return models.Prediction{}, ErrInsufficientBalance
	}
	for i := range l.user.Predictions {
		if l.user.Predictions[i].GameID == gameID && l.user.Predictions[i].Result == models.ResultPending {
			return models.Prediction{}, ErrDuplicateWager
		}
	}

	p := models.Prediction{
		ID:        uuid.NewString(),
		GameID:    gameID,
		Pick:      pick,
		Amount:    amount,
		Result:    models.ResultPending,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	l.user.Balance -= amount
	l.user.Predictions = append(l.user.Predictions, p)
	l.user.Stats.Pending++
	return p, nil
}

// Credit ajusta o saldo; usado apenas pela reconciliação, nunca como
// intenção direta do usuário.
func (l *Ledger) Credit(amount float64) {
	l.user.Balance += amount
}

// AdoptRemote aplica um palpite aceito pela autoridade. O saldo vem pronto
// da resposta remota e não é re-derivado localmente.
func (l *Ledger) AdoptRemote(p models.Prediction, newBalance float64) {
	p.PendingSync = false
	l.user.Balance = newBalance
	l.user.Predictions = append(l.user.Predictions, p)
	l.user.Stats.Pending++
}

// FlagPendingSync marca um palpite como aceito localmente durante
// indisponibilidade da autoridade.
func (l *Ledger) FlagPendingSync(predictionID string) {
	for i := range l.user.Predictions {
		if l.user.Predictions[i].ID == predictionID {
			l.user.Predictions[i].PendingSync = true
			return
		}
	}
}

// PendingSync lista os palpites ainda não replicados para a autoridade,
// em ordem de colocação.
func (l *Ledger) PendingSync() []models.Prediction {
	var out []models.Prediction
	for i := range l.user.Predictions {
		if l.user.Predictions[i].PendingSync {
			out = append(out, l.user.Predictions[i])
		}
	}
	return out
}

// MarkSynced limpa a flag de replay de um palpite e adota o saldo devolvido
// pela autoridade (a autoridade vence em caso de divergência).
func (l *Ledger) MarkSynced(predictionID string, newBalance float64) {
	for i := range l.user.Predictions {
		if l.user.Predictions[i].ID == predictionID {
			l.user.Predictions[i].PendingSync = false
			break
		}
	}
	l.user.Balance = newBalance
}

// AdoptUser substitui o estado do usuário inteiro por uma leitura
// autoritativa (last-writer-wins, como no refresh do catálogo).
func (l *Ledger) AdoptUser(user models.User) {
	l.user = user
	l.user.Predictions = append([]models.Prediction(nil), user.Predictions...)
}
