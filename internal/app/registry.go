package app

import (
	"database/sql"

	"lucia-hrms/internal/activity"
	"lucia-hrms/internal/approval"
	"lucia-hrms/internal/config"
	"lucia-hrms/internal/directory"
	"lucia-hrms/internal/leave"
	"lucia-hrms/internal/leavebalance"
	"lucia-hrms/internal/messaging/kafka"
	"lucia-hrms/internal/middleware"
	"lucia-hrms/internal/rbac"
	"lucia-hrms/internal/rbac/infra"
	"lucia-hrms/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Policy ---
	policy, err := leavebalance.LoadPolicy(cfg.LeavePolicyFile)
	if err != nil {
		return err
	}
	policy = policy.WithMode(cfg.InsufficientBalance)
	zap.L().Named("app").Info("leave policy loaded",
		zap.Strings("leave_types", policy.Codes()),
		zap.String("insufficient_balance", policy.InsufficientBalance),
	)

	// --- Repositories ---
	directoryRepo := directory.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	balanceRepo := leavebalance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbac.NewStaticRepository(), enforcer)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	// --- Services ---
	recorder := newRecorder(cfg, db)
	directoryService := directory.NewService(directoryRepo, rdb)
	ledger := leavebalance.NewLedger(balanceRepo, policy)
	balanceService := leavebalance.NewService(db, ledger, balanceRepo, directoryService, recorder)
	leaveService := leave.NewService(db, leaveRepo, counterRepo, ledger, directoryService, recorder)
	approvalService := approval.NewService(db, leaveRepo, ledger, directoryService, recorder)

	// --- Handlers ---
	balanceHandler := leavebalance.NewHandler(balanceService)
	leaveHandler := leave.NewHandler(leaveService)
	approvalHandler := approval.NewHandler(approvalService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	router.Use(middleware.RequestID(), middleware.ContextLogger(zap.L()))

	api := router.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.RateLimitByUser(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst),
	)
	idempotent := middleware.Idempotency(rdb, cfg.IdempotencyTTL)
	{
		leave.RegisterRoutes(api, leaveHandler, rbacService, idempotent)
		approval.RegisterRoutes(api, approvalHandler, rbacService, idempotent)
		leavebalance.RegisterRoutes(api, balanceHandler, rbacService, idempotent)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}

func newRecorder(cfg config.Config, db *sql.DB) activity.Recorder {
	if cfg.ActivitySink == config.ActivitySinkLog {
		return activity.NewAuditRecorder(activity.NewStdoutAuditLogger())
	}
	return activity.NewOutboxRecorder(kafka.NewOutboxRepository(db))
}
