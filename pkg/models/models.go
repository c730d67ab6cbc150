package models

// Status do ciclo de vida de um jogo.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "inProgress"
	StatusFinal      = "final"
)

// Resultado de um palpite.
const (
	ResultPending = "pending"
	ResultWin     = "win"
	ResultLoss    = "loss"
)

// Team representa um dos lados de um jogo.
// Score só é preenchido quando o jogo não está mais "scheduled".
type Team struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Record       string `json:"record"` // ex: "12-4"
	Score        *int   `json:"score,omitempty"`
}

// BettingLine é a linha de aposta opcional de um jogo.
type BettingLine struct {
	Favorite string  `json:"favorite"`
	Spread   float64 `json:"spread"`
}

// Game representa um evento esportivo do catálogo.
// Period/Clock só valem enquanto status == inProgress;
// Winner só vale quando status == final.
type Game struct {
	ID        string       `json:"id"`
	StartTime string       `json:"startTime,omitempty"`
	Status    string       `json:"status"`
	Period    string       `json:"period,omitempty"`
	Clock     string       `json:"clock,omitempty"`
	HomeTeam  Team         `json:"homeTeam"`
	AwayTeam  Team         `json:"awayTeam"`
	Odds      *BettingLine `json:"odds,omitempty"`
	Winner    string       `json:"winner,omitempty"`
}

// Prediction é um palpite do usuário sobre um jogo.
// PendingSync marca palpites aceitos localmente durante indisponibilidade
// da autoridade, aguardando replay.
type Prediction struct {
	ID          string   `json:"id"`
	GameID      string   `json:"gameId"`
	Pick        string   `json:"pick"` // abreviação do time escolhido
	Amount      float64  `json:"amount"`
	Result      string   `json:"result"`
	Payout      *float64 `json:"payout,omitempty"`
	Timestamp   string   `json:"timestamp,omitempty"`
	PendingSync bool     `json:"pendingSync,omitempty"`
}

// Stats é a contagem desnormalizada de palpites por resultado.
// Invariante: Wins+Losses+Pending == len(User.Predictions).
type Stats struct {
	Wins    int `json:"wins"`
	Losses  int `json:"losses"`
	Pending int `json:"pending"`
}

// User agrega saldo, histórico de palpites e estatísticas.
type User struct {
	ID          string       `json:"id"`
	Username    string       `json:"username"`
	Balance     float64      `json:"balance"`
	Predictions []Prediction `json:"predictions"`
	Stats       Stats        `json:"stats"`
}

// Snapshot é o par serializável {games, user} persistido tanto pela
// autoridade quanto pela réplica local do cliente.
type Snapshot struct {
	Games []Game `json:"games"`
	User  User   `json:"user"`
}

// Clone devolve uma cópia profunda o suficiente do snapshot para que o
// chamador possa mutar sem compartilhar slices com o original.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Games: make([]Game, len(s.Games)),
		User:  s.User,
	}
	copy(out.Games, s.Games)
	out.User.Predictions = make([]Prediction, len(s.User.Predictions))
	copy(out.User.Predictions, s.User.Predictions)
	return out
}
