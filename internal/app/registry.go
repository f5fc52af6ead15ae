package app

import (
	"database/sql"
	"net/http"

	"go-hris-leave/internal/config"
	"go-hris-leave/internal/employee"
	"go-hris-leave/internal/leave"
	"go-hris-leave/internal/leavebalance"
	"go-hris-leave/internal/leavepolicy"
	"go-hris-leave/internal/messaging/kafka"
	"go-hris-leave/internal/middleware"
	"go-hris-leave/internal/notification"
	"go-hris-leave/internal/rbac"
	"go-hris-leave/internal/rbac/infra"
	"go-hris-leave/internal/shared/dbtx"
	"go-hris-leave/internal/shared/response"
	"go-hris-leave/internal/timeline"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router.Use(
		middleware.ContextLogger(zap.L()),
		middleware.NewHTTPMetrics("go-hris-leave", reg).Middleware(),
	)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	router.GET("/healthz", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			response.Error(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "database unreachable", nil)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, nil)
	})

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leavePolicyRepo := leavepolicy.NewRepository(gormDB)
	leaveBalanceRepo := leavebalance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	timelineRepo := timeline.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBAC.ModelPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	leavePolicyService := leavepolicy.NewService(leavePolicyRepo)
	timelineService := timeline.NewService(timelineRepo)
	notificationService := notification.NewService(notificationRepo)
	leaveService := leave.NewService(db, leaveRepo, leave.Dependencies{
		Employees: employee.NewDirectory(employeeRepo),
		Policies:  leavePolicyService,
		Ledger:    leavebalance.NewLedger(leaveBalanceRepo),
		Cache:     leavebalance.NewCache(rdb, cfg.Redis.BalanceCacheTTL),
		Events:    leave.NewOutboxSink(outboxRepo, cfg.Kafka.LeaveTopic),
		Metrics:   leave.NewMetrics(reg),
	}, leave.Options{
		Tx:             dbtx.Options{Dialect: cfg.DB.Driver, LockTimeout: cfg.DB.LockTimeout},
		BusyRetryDelay: cfg.Leave.BusyRetryDelay,
	})

	// --- Handlers ---
	leavePolicyHandler := leavepolicy.NewHandler(leavePolicyService)
	leaveHandler := leave.NewHandler(leaveService)
	timelineHandler := timeline.NewHandler(timelineService)
	notificationHandler := notification.NewHandler(notificationService)
	rbacHandler := rbac.NewHandler(rbacService)

	leaveRouteOpts := leave.RouteOptions{
		DecisionLimiter: middleware.RateLimitByUser(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst),
	}
	if rdb != nil {
		leaveRouteOpts.Idempotency = middleware.Idempotency(rdb, cfg.Redis.IdempotencyTTL)
	}

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		leavepolicy.RegisterRoutes(api, leavePolicyHandler, rbacService, cfg.JWTSecret)
		leave.RegisterRoutes(api, leaveHandler, rbacService, cfg.JWTSecret, leaveRouteOpts)
		timeline.RegisterRoutes(api, timelineHandler, rbacService, cfg.JWTSecret)
		notification.RegisterRoutes(api, notificationHandler, cfg.JWTSecret)
		rbac.RegisterRoutes(api, rbacHandler, cfg.JWTSecret)
	}

	return nil
}
