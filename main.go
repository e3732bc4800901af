package main

import (
	"net/http"
	"os"

	"jamaah_server/config"
	"jamaah_server/controllers"
	"jamaah_server/routes"
	"jamaah_server/services"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalw("failed to load config", "error", err)
	}

	// Key-value store
	var kv services.KVStore
	switch cfg.Store {
	case "dynamo":
		log.Infow("using DynamoDB store", "table", cfg.DynamoTable)
		kv = &services.DynamoKV{
			Client: services.InitializeDynamoDBClient(cfg.AWSRegion),
			Table:  cfg.DynamoTable,
		}
	default:
		log.Infow("using Redis store", "addr", cfg.RedisAddr)
		kv = services.NewRedisKV(cfg.RedisAddr, cfg.RedisPassword)
	}

	// Credential delivery
	var sender services.NotificationSender
	if cfg.AMQPURL != "" {
		amqpSender, err := services.NewAMQPSender(cfg.AMQPURL, cfg.NotifyQueue)
		if err != nil {
			log.Fatalw("failed to connect to delivery queue", "error", err)
		}
		defer amqpSender.Close()
		sender = amqpSender
	} else {
		sender = &services.LogSender{Log: log}
	}

	// Services
	authProvider := services.NewHostedAuthClient(cfg.AuthBaseURL, cfg.AuthServiceKey)
	authService := &services.AuthService{
		Provider:  authProvider,
		JWTSecret: []byte(cfg.JWTSecret),
		Log:       log,
	}
	profileService := &services.ProfileService{KV: kv, Log: log}
	notificationService := &services.NotificationService{KV: kv, Log: log}
	memberService := &services.MemberService{
		KV:              kv,
		Provider:        authProvider,
		Notifications:   notificationService,
		Sender:          sender,
		Log:             log,
		InviteSingleUse: cfg.InviteSingleUse,
	}
	timelineService := &services.TimelineService{KV: kv, Profiles: profileService, Log: log}
	chatService := &services.ChatService{KV: kv, Profiles: profileService, Log: log}
	eventService := &services.EventService{KV: kv, Log: log}

	// Router
	r := mux.NewRouter()
	r.HandleFunc("/", controllers.WelcomeHandler).Methods("GET")
	r.HandleFunc("/health", controllers.HealthCheckHandler).Methods("GET")

	routes.RegisterAuthRoutes(r, memberService, authService, profileService)
	routes.RegisterProfileRoutes(r, profileService, memberService, authService)
	routes.RegisterNotificationRoutes(r, notificationService, authService)
	routes.RegisterTimelineRoutes(r, timelineService, authService)
	routes.RegisterChatRoutes(r, chatService, authService)
	routes.RegisterEventRoutes(r, eventService, authService)

	if cfg.PostgresDSN != "" {
		marketService, err := services.NewMarketService(cfg.PostgresDSN, log)
		if err != nil {
			log.Fatalw("failed to open relational database", "error", err)
		}
		routes.RegisterMarketRoutes(r, marketService, authService, profileService)
	} else {
		log.Warn("POSTGRES_DSN not set, marketplace and donation routes disabled")
	}

	if cfg.S3Bucket != "" {
		mediaService, err := services.NewMediaService(cfg.AWSRegion, cfg.S3Bucket)
		if err != nil {
			log.Fatalw("failed to initialize media service", "error", err)
		}
		routes.RegisterMediaRoutes(r, mediaService, authService)
	} else {
		log.Warn("S3_BUCKET_NAME not set, media routes disabled")
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	log.Infow("starting server", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, corsHandler); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}
