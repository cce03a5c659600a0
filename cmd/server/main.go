package main

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/smartcampus/hub/internal/config"
	"github.com/smartcampus/hub/internal/database"
	"github.com/smartcampus/hub/internal/handler"
	"github.com/smartcampus/hub/internal/middleware"
	"github.com/smartcampus/hub/internal/queue"
	"github.com/smartcampus/hub/internal/repository"
	"github.com/smartcampus/hub/internal/router"
	"github.com/smartcampus/hub/internal/service"
	"github.com/smartcampus/hub/internal/storage"
	"github.com/smartcampus/hub/internal/utils"
)

// requestValidator adapts go-playground/validator to echo.Validator.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatalf("init upload store: %v", err)
	}

	// repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	facilities := repository.NewFacilityRepo(db)
	bookings := repository.NewBookingRepo(db)
	tickets := repository.NewTicketRepo(db)
	comments := repository.NewCommentRepo(db)
	notifications := repository.NewNotificationRepo(db)

	publisher := queue.NewPublisher(queue.BrokerURL())
	clock := service.SystemClock()

	// services
	facilitySvc := service.NewFacilityService(facilities, clock)
	bookingSvc := service.NewBookingService(bookings, facilities, users, notifications, publisher, clock)
	ticketSvc := service.NewTicketService(tickets, facilities, users, notifications, publisher, clock)
	commentSvc := service.NewCommentService(comments, tickets, users, notifications, clock)
	notificationSvc := service.NewNotificationService(notifications, clock)

	google := utils.NewGoogleOAuthConfig(cfg.GoogleClientID, cfg.GoogleSecret, cfg.GoogleRedirect)

	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	e.Static("/uploads", store.Dir())

	router.Register(e, router.Handlers{
		Auth:          handler.NewAuthHandler(cfg, users, tokens, google),
		Facilities:    handler.NewFacilityHandler(facilitySvc),
		Bookings:      handler.NewBookingHandler(bookingSvc),
		Tickets:       handler.NewTicketHandler(ticketSvc, store),
		Comments:      handler.NewCommentHandler(commentSvc),
		Notifications: handler.NewNotificationHandler(notificationSvc),
	}, cfg.JWTSecret, limiter, cache)

	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
