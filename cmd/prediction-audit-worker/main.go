package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/sports-predict-platform/internal/audit/consumer"
	"github.com/radieske/sports-predict-platform/internal/audit/repository"
	"github.com/radieske/sports-predict-platform/internal/shared/config"
	"github.com/radieske/sports-predict-platform/internal/shared/db"
	skafka "github.com/radieske/sports-predict-platform/internal/shared/kafka"
	"github.com/radieske/sports-predict-platform/internal/shared/logger"
	"github.com/radieske/sports-predict-platform/internal/shared/metrics"
)

// Métricas Prometheus do worker
var (
	consumed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audit_messages_consumed_total",
		Help: "Total de mensagens prediction_placed consumidas",
	})
	persisted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "audit_rows_persisted_total",
		Help: "Total de registros de auditoria gravados",
	})
	failures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "audit_failures_total",
		Help: "Falhas por fase de processamento",
	}, []string{"phase"})
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prometheus.MustRegister(consumed, persisted, failures)

	// Postgres para a trilha de auditoria
	pg, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatal("pg connect", zap.Error(err))
	}
	defer pg.Close()

	// Kafka consumer do tópico prediction_placed + DLQ
	reader := skafka.NewReader(cfg.KafkaBrokers, cfg.TopicPredictionPlaced, "prediction-audit")
	defer reader.Close()

	var dlq *skafka.Writer
	if cfg.TopicPredictionPlacedDLQ != "" {
		dlq = skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicPredictionPlacedDLQ)
		defer dlq.Close()
	}

	// Servidor HTTP para métricas Prometheus e healthcheck
	metrics.StartMetricsServer(cfg.MetricsPort, func(hctx context.Context) error {
		return pg.PingContext(hctx)
	})
	log.Info("metrics/health", zap.String("addr", ":"+cfg.MetricsPort))

	proc := &consumer.Processor{
		Log:        log,
		Reader:     reader,
		Repo:       repository.NewPostgresRepo(pg),
		DLQ:        dlq,
		OnConsumed: consumed.Inc,
		OnPersist:  persisted.Inc,
		OnError:    func(phase string) { failures.WithLabelValues(phase).Inc() },
	}

	log.Info("prediction-audit-worker running", zap.String("topic", cfg.TopicPredictionPlaced))
	if err := proc.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal("processor", zap.Error(err))
	}
}
