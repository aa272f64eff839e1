package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "approval-router/internal/adapter/http"
	"approval-router/internal/adapter/middleware"
	"approval-router/internal/adapter/repository/mysql"
	"approval-router/internal/config"
	"approval-router/internal/domain/delegation"
	"approval-router/internal/domain/request"
	"approval-router/internal/domain/rule"
	"approval-router/internal/infrastructure/cache"
	"approval-router/internal/infrastructure/db"
	ucApproval "approval-router/internal/usecase/approval"
	ucDelegation "approval-router/internal/usecase/delegation"
	ucRule "approval-router/internal/usecase/rule"
	"approval-router/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal("mysql connection failed", zap.Error(err))
	}
	if err := gdb.AutoMigrate(
		&rule.ApprovalRule{}, &rule.ApprovalTier{}, &rule.ApproverConfig{},
		&request.ApprovalRequest{}, &request.ChainItem{}, &request.Comment{},
		&delegation.Delegation{},
	); err != nil {
		log.Fatal("schema migration failed", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}

	ruleRepo := mysql.NewRuleRepository(gdb)
	requestRepo := mysql.NewRequestRepository(gdb)
	delegationRepo := mysql.NewDelegationRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	ruleUC := ucRule.NewUsecase(ruleRepo, log)
	approvalUC := ucApproval.NewUsecase(ruleRepo, requestRepo, delegationRepo, tx, log)
	delegationUC := ucDelegation.NewUsecase(delegationRepo, log)

	h := httpadp.NewHandler()
	rh := httpadp.NewRuleHandler(ruleUC)
	ah := httpadp.NewApprovalHandler(approvalUC)
	dh := httpadp.NewDelegationHandler(delegationUC)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	idem := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log)

	e.GET("/health", h.Health)

	e.POST("/rules", rh.Create, idem)
	e.GET("/rules", rh.List)
	e.GET("/rules/:rule_id", rh.Get)
	e.PUT("/rules/:rule_id", rh.Update, idem)
	e.POST("/rules/:rule_id/active", rh.SetActive, idem)

	e.POST("/requests", ah.Submit, idem)
	e.GET("/requests/:request_id", ah.Get)
	e.POST("/requests/:request_id/approve", ah.Approve, idem)
	e.POST("/requests/:request_id/reject", ah.Reject, idem)
	e.POST("/requests/:request_id/escalate", ah.Escalate, idem)
	e.POST("/requests/:request_id/comments", ah.AddComment, idem)

	e.GET("/approvals/pending/:user_id", ah.PendingForUser)
	e.GET("/approvals/history", ah.History)
	e.GET("/approvals/overdue", ah.Overdue)
	e.GET("/approvals/stats", ah.Stats)

	e.POST("/delegations", dh.Grant, idem)
	e.GET("/delegations", dh.List)
	e.POST("/delegations/:delegation_id/revoke", dh.Revoke, idem)

	addr := ":" + cfg.AppPort
	log.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
