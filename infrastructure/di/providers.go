package di

import (
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cupcake-backend/application/ports"
	"cupcake-backend/domain/checkout"
	"cupcake-backend/infrastructure/config"
	"cupcake-backend/infrastructure/persistence/postgres"
	"cupcake-backend/infrastructure/sessions"
)

// ProvideLogger builds the logger for the configured environment at the
// configured level.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}
	if cfg.LogLevel != "" {
		lvl, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zcfg.Build()
}

// ProvideDB opens the database connection and applies pending migrations
func ProvideDB(cfg *config.Config) (*sql.DB, error) {
	db, err := postgres.Open(postgres.Credentials{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		return nil, err
	}
	if err := postgres.RunMigrations(db, cfg.MigrationsDir); err != nil {
		return nil, err
	}
	return db, nil
}

// ProvideSessionStore creates the session store: Redis when configured,
// otherwise in-process memory.
func ProvideSessionStore(cfg *config.Config, logger *zap.Logger) ports.SessionStore {
	if cfg.RedisAddr == "" {
		logger.Info("using in-memory session store")
		return sessions.NewMemoryStore(cfg.SessionTTL)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	logger.Info("using redis session store", zap.String("addr", cfg.RedisAddr))
	return sessions.NewRedisStore(client, cfg.SessionTTL)
}

// ProvideDeliveryRules creates the delivery rule set from the configured fee
func ProvideDeliveryRules(cfg *config.Config) (*checkout.DeliveryRules, error) {
	fee, err := decimal.NewFromString(cfg.DeliveryFee)
	if err != nil {
		return nil, fmt.Errorf("invalid DELIVERY_FEE %q: %w", cfg.DeliveryFee, err)
	}
	return checkout.NewDeliveryRules(fee), nil
}

// ProvideCatalogRepository creates the catalog repository
func ProvideCatalogRepository(db *sql.DB) ports.CatalogRepository {
	return postgres.NewCatalogRepository(db)
}

// ProvideBuyerRepository creates the buyer repository
func ProvideBuyerRepository(db *sql.DB) ports.BuyerRepository {
	return postgres.NewBuyerRepository(db)
}

// ProvideOrderRepository creates the order repository
func ProvideOrderRepository(db *sql.DB) ports.OrderRepository {
	return postgres.NewOrderRepository(db)
}

// ProvideTxManager creates the transaction manager
func ProvideTxManager(db *sql.DB, logger *zap.Logger) ports.TxManager {
	return postgres.NewTxManager(db, logger)
}
