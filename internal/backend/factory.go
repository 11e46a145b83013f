package backend

import (
	"fmt"

	"disciplina/internal/adapters"
	"disciplina/internal/amqp"
	"disciplina/internal/config"
	"disciplina/internal/log"
	"disciplina/internal/services"
	"disciplina/internal/storage"
	"disciplina/internal/store/memory"
)

// Factory builds Record Stores from configuration.
type Factory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) *Factory {
	return &Factory{logger: logger.WithComponent(log.ComponentBackend)}
}

func (f *Factory) Create(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case MemoryBackend:
		return f.createMemory(cfg), nil
	case SQLiteBackend:
		return f.createSQLite(cfg)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}

func (f *Factory) createMemory(cfg Config) *Result {
	st := memory.NewFromSeedFile(cfg.SeedFile)
	f.logger.Info("Initialized memory backend", "seed_file", cfg.SeedFile)
	return &Result{Store: st}
}

func (f *Factory) createSQLite(cfg Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize sqlite repository: %w", err)
	}

	// AMQP is optional; without it trade saves stay local and the worker's
	// reconciler drains the synced=0 backlog whenever it runs.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without sync", "error", err)
			amqpClient = nil
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	trades := services.NewTradeService(repo, amqpClient)
	f.logger.Info("Initialized sqlite backend",
		"db_path", cfg.SQLiteDBPath,
		"amqp_enabled", amqpClient != nil)

	return &Result{
		Store:   adapters.NewSyncedStore(repo, trades),
		Cleanup: trades.Close,
	}, nil
}

// FromAppConfig maps application configuration onto backend configuration.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	t := Type(appConfig.DataBackend)
	if !t.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:         t,
		SQLiteDBPath: appConfig.SQLiteDBPath,
		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,
		SeedFile:     appConfig.SeedFile,
	}, nil
}
