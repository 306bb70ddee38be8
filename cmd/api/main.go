package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/djordjeivanovic11/ladimood-back/internal/config"
	"github.com/djordjeivanovic11/ladimood-back/internal/handler"
	"github.com/djordjeivanovic11/ladimood-back/internal/hashid"
	"github.com/djordjeivanovic11/ladimood-back/internal/infra/db"
	gormrepo "github.com/djordjeivanovic11/ladimood-back/internal/infra/repository"
	"github.com/djordjeivanovic11/ladimood-back/internal/logger"
	"github.com/djordjeivanovic11/ladimood-back/internal/metrics"
	"github.com/djordjeivanovic11/ladimood-back/internal/middleware"
	"github.com/djordjeivanovic11/ladimood-back/internal/migrate"
	"github.com/djordjeivanovic11/ladimood-back/internal/notification"
	"github.com/djordjeivanovic11/ladimood-back/internal/orderfeed"
	"github.com/djordjeivanovic11/ladimood-back/internal/ratelimit"
	"github.com/djordjeivanovic11/ladimood-back/internal/server"
	"github.com/djordjeivanovic11/ladimood-back/internal/usecase"
	auth "github.com/djordjeivanovic11/ladimood-back/internal/usecase/auth_usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New(logger.Options{ServiceName: "ladimood-api"})

	cfg, err := config.Load()
	requireResource(ctx, log, "config", err)

	log = logger.New(logger.Options{
		ServiceName: "ladimood-api",
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
	})
	ctx = log.WithField(ctx, "env", cfg.App.Env)

	//DB接続
	gdb, err := db.Connect(cfg.DB)
	requireResource(ctx, log, "database", err)
	sqlDB, err := gdb.DB()
	requireResource(ctx, log, "sql database", err)
	requireResource(ctx, log, "migrations", migrate.MaybeRunDev(ctx, cfg.App, log, sqlDB))
	requireResource(ctx, log, "roles", db.SeedRoles(ctx, gdb))

	//Redisが無ければレート制限なしで起動する
	var limiter middleware.RateLimiter
	closers := []func() error{sqlDB.Close}
	if cfg.Redis.URL != "" {
		rl, err := ratelimit.New(ctx, cfg.Redis.URL)
		requireResource(ctx, log, "redis", err)
		limiter = rl
		closers = append(closers, rl.Close)
	} else {
		log.Warn(ctx, "REDIS_URL is not set, auth rate limiting disabled", nil)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	ids, err := hashid.New(cfg.HashID.Salt, cfg.HashID.MinLength)
	requireResource(ctx, log, "hashids", err)

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Algorithm:  cfg.JWT.Algorithm,
		AccessTTL:  cfg.JWT.AccessTTL(),
		RefreshTTL: cfg.JWT.RefreshTTL(),
		ResetTTL:   cfg.JWT.ResetTTL(),
	}, auth.SystemClock{})
	requireResource(ctx, log, "token service", err)

	//Repository（GORM実装）
	users := gormrepo.NewUserGormRepository(gdb)
	roles := gormrepo.NewRoleGormRepository(gdb)
	addresses := gormrepo.NewAddressGormRepository(gdb)
	products := gormrepo.NewProductGormRepository(gdb)
	categories := gormrepo.NewCategoryGormRepository(gdb)
	carts := gormrepo.NewCartGormRepository(gdb)
	wishlists := gormrepo.NewWishlistGormRepository(gdb)
	orders := gormrepo.NewOrderGormRepository(gdb)
	sales := gormrepo.NewSalesGormRepository(gdb)
	auditLogs := gormrepo.NewAuditLogGormRepository(gdb)
	newsletter := gormrepo.NewNewsletterGormRepository(gdb)
	tx := gormrepo.NewTxManagerGorm(gdb)

	notifier := notification.NewNotifier(notification.NewMailer(cfg.Mail, log), cfg.Mail.Recipient, cfg.App.FrontendURL)
	feed := orderfeed.NewHub(cfg.App.FrontendURL, log)
	closers = append(closers, func() error { feed.Close(); return nil })

	hasher := auth.NewBcryptPasswordHasher(cfg.Password.BcryptCost)
	verifier := auth.NewBcryptPasswordVerifier()

	//Usecase
	productUC := usecase.NewProductUsecase(products, categories)
	authH := handler.NewAuthHandler(
		auth.NewRegisterUserUsecase(users, roles, hasher),
		auth.NewLoginUsecase(users, verifier, tokens),
		auth.NewRefreshUsecase(users, tokens),
		auth.NewChangePasswordUsecase(users, hasher, verifier),
		auth.NewForgotPasswordUsecase(users, tokens, notifier, log, cfg.App.FrontendURL),
		auth.NewResetPasswordUsecase(users, tokens, hasher),
	)

	e := server.New(server.Options{
		Log:           log,
		Metrics:       m,
		MetricsRoute:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		Authenticator: auth.NewAuthenticator(tokens, users),
		Limiter:       limiter,
		RateLimit:     cfg.RateLimit,
		AllowOrigins:  []string{cfg.App.FrontendURL},
	}, server.Handlers{
		Auth:         authH,
		Account:      handler.NewAccountHandler(usecase.NewAccountUsecase(users, newsletter, notifier, m, log)),
		Address:      handler.NewAddressHandler(usecase.NewAddressUsecase(addresses)),
		Cart:         handler.NewCartHandler(usecase.NewCartUsecase(carts, products), usecase.NewWishlistUsecase(wishlists, products)),
		Order:        handler.NewOrderHandler(usecase.NewOrderUsecase(tx, orders, ids, notifier, feed, m, log)),
		Product:      handler.NewProductHandler(productUC),
		AdminOrder:   handler.NewAdminOrderHandler(usecase.NewAdminOrderUsecase(tx, orders, sales, auditLogs, ids), feed),
		AdminProduct: handler.NewAdminProductHandler(productUC),
	})

	if err := server.Run(ctx, e, cfg.App.Addr(), log, closers...); err != nil {
		log.Error(ctx, "server stopped with error", err)
		os.Exit(1)
	}
	log.Info(ctx, "server stopped")
}

func requireResource(ctx context.Context, log *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	log.Error(ctx, "resource not working: "+resource, err)
	os.Exit(1)
}
