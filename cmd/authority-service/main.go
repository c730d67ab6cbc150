package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/sports-predict-platform/internal/authority"
	ahttp "github.com/radieske/sports-predict-platform/internal/authority/httpapi"
	kpub "github.com/radieske/sports-predict-platform/internal/authority/producer"
	"github.com/radieske/sports-predict-platform/internal/shared/cache"
	"github.com/radieske/sports-predict-platform/internal/shared/config"
	"github.com/radieske/sports-predict-platform/internal/shared/db"
	skafka "github.com/radieske/sports-predict-platform/internal/shared/kafka"
	"github.com/radieske/sports-predict-platform/internal/shared/logger"
	"github.com/radieske/sports-predict-platform/internal/shared/metrics"
	"github.com/radieske/sports-predict-platform/internal/simulator"
	"github.com/radieske/sports-predict-platform/internal/snapshot"
)

// Métricas Prometheus do serviço
var (
	simTicks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "authority_simulator_ticks_total",
		Help: "Total de ticks do simulador de placares",
	})
	simAdvanced = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "authority_simulator_games_advanced_total",
		Help: "Total de jogos avançados pelo simulador",
	})
	predAccepted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "authority_predictions_accepted_total",
		Help: "Total de palpites aceitos",
	})
	predRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "authority_predictions_rejected_total",
		Help: "Total de palpites rejeitados",
	})
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	prometheus.MustRegister(simTicks, simAdvanced, predAccepted, predRejected)

	// Store durável: blob chave-valor com backend configurável
	var (
		blob snapshot.Blob
		rdb  *redis.Client
		pg   *sql.DB
	)
	switch cfg.StoreBackend {
	case "postgres":
		pg, err = db.ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatal("pg", zap.Error(err))
		}
		defer pg.Close()
		blob = snapshot.NewPostgresBlob(pg)
	case "file":
		blob = snapshot.NewFileBlob(cfg.StoreDir)
	default: // redis
		rdb, err = cache.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			log.Fatal("redis", zap.Error(err))
		}
		blob = snapshot.NewRedisBlob(rdb)
	}
	store := snapshot.NewStore(blob, cfg.SnapshotKey)

	// Kafka writer (topic prediction_placed)
	writer := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicPredictionPlaced)
	defer writer.Close()
	publ := kpub.NewKafkaPublisher(writer, cfg.TopicPredictionPlaced)

	core := authority.NewCore(log, store, publ)
	if err := core.Load(ctx); err != nil {
		log.Fatal("load state", zap.Error(err))
	}

	// Simulador de placares: único escritor dos jogos em andamento
	sim := simulator.New(log, core,
		simulator.WithInterval(cfg.SimTickEvery),
		simulator.WithTickHook(simTicks.Inc, simAdvanced.Inc),
	)
	go func() {
		_ = sim.Run(ctx)
	}()

	// HTTP público
	api := &ahttp.API{
		Log:        log,
		Core:       core,
		OnAccepted: predAccepted.Inc,
		OnRejected: predRejected.Inc,
	}
	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: api.Router(),
	}

	// metrics/health
	metrics.StartMetricsServer(cfg.MetricsPort, func(hctx context.Context) error {
		if rdb != nil {
			if err := rdb.Ping(hctx).Err(); err != nil {
				return err
			}
		}
		if pg != nil {
			return pg.PingContext(hctx)
		}
		return nil
	})
	log.Info("metrics/health", zap.String("addr", ":"+cfg.MetricsPort))

	log.Info("authority-service listening",
		zap.String("addr", fmt.Sprintf(":%s", cfg.HTTPPort)),
		zap.String("store_backend", cfg.StoreBackend),
		zap.Duration("sim_tick", cfg.SimTickEvery),
	)
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}
