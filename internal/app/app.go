package app

import (
	"context"
	"database/sql"
	"fmt"

	"lucia-hrms/internal/config"
	"lucia-hrms/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type infrastructure struct {
	gormDB *gorm.DB
	db     *sql.DB
	redis  *redis.Client
}

func (i *infrastructure) Close() {
	if i.redis != nil {
		_ = i.redis.Close()
	}
	if i.db != nil {
		_ = i.db.Close()
	}
}

// connect opens the database, applies pending migrations when enabled and,
// with withRedis, opens the cache as well.
func connect(cfg config.Config, withRedis bool) (*infrastructure, error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, cfg.ConnectRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	infra := &infrastructure{gormDB: gormDB, db: sqlDB}
	logger.Info("database connection established")

	if cfg.RunMigrations {
		if err := connection.Migrate(context.Background(), sqlDB); err != nil {
			infra.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	if withRedis {
		rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.redis = rdb
		logger.Info("redis connection established")
	}

	return infra, nil
}

// BuildApp wires every module onto router. The returned func releases the
// connections and should run after the server has stopped.
func BuildApp(router *gin.Engine, cfg config.Config) (func(), error) {
	infra, err := connect(cfg, true)
	if err != nil {
		return nil, err
	}

	if err := registerModules(router, cfg, infra.db, infra.gormDB, infra.redis); err != nil {
		infra.Close()
		return nil, err
	}

	return infra.Close, nil
}
