package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/kjh/spacebook/internal/config"
	"github.com/kjh/spacebook/internal/database"
	"github.com/kjh/spacebook/internal/handler"
	"github.com/kjh/spacebook/internal/middleware"
	"github.com/kjh/spacebook/internal/queue"
	"github.com/kjh/spacebook/internal/repository"
	"github.com/kjh/spacebook/internal/router"
	"github.com/kjh/spacebook/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	spaces := repository.NewSpaceRepo(db)
	reservations := repository.NewReservationRepo(db)

	ledger := service.NewLedger(db, spaces, reservations)
	authSvc := service.NewAuthService(users, tokens, ledger,
		cfg.JWTSecret, cfg.AccessTTLMin, cfg.RefreshTTLDays, cfg.BcryptCost)
	userSvc := service.NewUserService(users, cfg.BcryptCost)
	spaceSvc := service.NewSpaceService(spaces)
	reservationSvc := service.NewReservationService(ledger, users, spaces, reservations,
		service.NotifierFunc(queue.Publish))
	recommendSvc := service.NewRecommendationService(service.NewGroqExtractor(cfg.GroqKey), spaces)

	// The notification consumer runs in-process. Without a SendGrid
	// key it writes the rendered mails to a local log instead.
	var mailer queue.Mailer = queue.LogMailer{}
	if cfg.SendgridKey != "" {
		mailer = queue.NewSendgridMailer(cfg.SendgridKey, cfg.SendgridFrom)
	}
	go queue.StartNotifyConsumer(mailer)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	// Redis is optional: without it browsing is uncached and requests
	// unthrottled, but the API stays up.
	rdb := config.NewRedisClient()
	browseCache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	reservationH := handler.NewReservationHandler(reservationSvc)
	router.RegisterHealth(e)
	router.RegisterAuth(e, handler.NewAuthHandler(authSvc), cfg.JWTSecret)
	router.RegisterUsers(e, handler.NewUserHandler(userSvc), cfg.JWTSecret)
	router.RegisterSpaces(e, handler.NewSpaceHandler(spaceSvc), reservationH, cfg.JWTSecret, browseCache)
	router.RegisterReservations(e, reservationH, cfg.JWTSecret, rateLimit)
	router.RegisterRecommendations(e, handler.NewRecommendHandler(recommendSvc), cfg.JWTSecret, rateLimit)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
