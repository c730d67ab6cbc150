package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/radieske/sports-predict-platform/internal/remote"
	"github.com/radieske/sports-predict-platform/internal/shared/config"
	"github.com/radieske/sports-predict-platform/internal/shared/logger"
	"github.com/radieske/sports-predict-platform/internal/snapshot"
	"github.com/radieske/sports-predict-platform/internal/syncer"
	"github.com/radieske/sports-predict-platform/pkg/models"
)

const usage = `uso: predict-client <comando>

comandos:
  games                      atualiza e lista os jogos
  game <id>                  mostra um jogo
  user                       mostra o perfil do usuário
  bet <gameId> <pick> <val>  coloca um palpite
  sync                       replica palpites locais pendentes
  refresh                    só atualiza o catálogo
`

func main() {
	cfg := config.Load()
	log, err := logger.New("predict-client", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	ctx := context.Background()

	replica := snapshot.NewStore(snapshot.NewFileBlob(cfg.ReplicaDir), cfg.SnapshotKey)
	api := remote.New(cfg.AuthorityURL)
	co := syncer.New(log, api, replica)

	if err := co.Load(ctx); err != nil {
		log.Fatal("load replica", zap.Error(err))
	}

	switch os.Args[1] {
	case "games":
		_ = co.RefreshGames(ctx)
		for _, g := range co.Games() {
			printGame(g)
		}

	case "game":
		if len(os.Args) < 3 {
			fmt.Print(usage)
			os.Exit(2)
		}
		_ = co.RefreshGames(ctx)
		g, ok := co.Game(os.Args[2])
		if !ok {
			fmt.Println("jogo não encontrado:", os.Args[2])
			os.Exit(1)
		}
		printGame(g)

	case "user":
		_ = co.RefreshUser(ctx)
		printUser(co.User())

	case "bet":
		if len(os.Args) < 5 {
			fmt.Print(usage)
			os.Exit(2)
		}
		amount, err := strconv.ParseFloat(os.Args[4], 64)
		if err != nil {
			fmt.Println("valor inválido:", os.Args[4])
			os.Exit(2)
		}
		p, err := co.PlaceWager(ctx, os.Args[2], os.Args[3], amount)
		if err != nil {
			fmt.Println("palpite rejeitado:", err)
			os.Exit(1)
		}
		origin := "autoridade"
		if p.PendingSync {
			origin = "local (aguardando replay)"
		}
		fmt.Printf("palpite aceito via %s: %s em %s por %.2f\n", origin, p.Pick, p.GameID, p.Amount)
		fmt.Printf("saldo: %.2f\n", co.User().Balance)

	case "sync":
		_ = co.SyncPending(ctx)
		fmt.Printf("palpites aguardando replay: %d\n", countPendingSync(co.User()))

	case "refresh":
		_ = co.RefreshGames(ctx)
		fmt.Printf("jogos no catálogo: %d\n", len(co.Games()))

	default:
		fmt.Print(usage)
		os.Exit(2)
	}
}

func printGame(g models.Game) {
	switch g.Status {
	case models.StatusInProgress:
		fmt.Printf("[%s] %s %d x %d %s  (%s %s)\n",
			g.ID, g.HomeTeam.Abbreviation, scoreOf(g.HomeTeam.Score),
			scoreOf(g.AwayTeam.Score), g.AwayTeam.Abbreviation, g.Period, g.Clock)
	case models.StatusFinal:
		fmt.Printf("[%s] %s %d x %d %s  (final, vencedor %s)\n",
			g.ID, g.HomeTeam.Abbreviation, scoreOf(g.HomeTeam.Score),
			scoreOf(g.AwayTeam.Score), g.AwayTeam.Abbreviation, g.Winner)
	default:
		fmt.Printf("[%s] %s x %s  (agendado %s)\n",
			g.ID, g.HomeTeam.Abbreviation, g.AwayTeam.Abbreviation, g.StartTime)
	}
}

func printUser(u models.User) {
	fmt.Printf("%s (%s)  saldo: %.2f\n", u.Username, u.ID, u.Balance)
	fmt.Printf("stats: %d wins / %d losses / %d pending\n", u.Stats.Wins, u.Stats.Losses, u.Stats.Pending)
	for _, p := range u.Predictions {
		mark := ""
		if p.PendingSync {
			mark = " *local"
		}
		fmt.Printf("  %s: %.2f em %s [%s]%s\n", p.GameID, p.Amount, p.Pick, p.Result, mark)
	}
}

func countPendingSync(u models.User) int {
	n := 0
	for _, p := range u.Predictions {
		if p.PendingSync {
			n++
		}
	}
	return n
}

func scoreOf(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
