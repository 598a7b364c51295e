package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"leadflow/internal/config"
	"leadflow/internal/infra/database"
	"leadflow/internal/infra/http/handlers"
	"leadflow/internal/infra/http/middleware"
	"leadflow/internal/infra/integration/grok"
	"leadflow/internal/infra/mail"
	"leadflow/internal/infra/queue"
	"leadflow/internal/usecase"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	// RabbitMQ is optional: the service runs without a broker, events are
	// simply not published.
	var amqpConn *amqp.Connection
	var producer usecase.EventProducer
	if cfg.AMQPHost != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPUser, cfg.AMQPPass, cfg.AMQPHost, cfg.AMQPPort)
		if err != nil {
			logger.Fatal("rabbitmq connection failed", zap.Error(err))
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		amqpConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	} else {
		logger.Warn("AMQP_HOST not set, lead events disabled")
	}

	// Missing API key is fatal before any request is served.
	grokClient, err := grok.NewClient(cfg.XAIBaseURL, cfg.XAIAPIKey, cfg.XAIModel, logger)
	if err != nil {
		logger.Fatal("completion client setup failed", zap.Error(err))
	}

	var mailer usecase.OutreachMailer
	if cfg.MailHost != "" {
		mailer = mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
	} else {
		logger.Warn("MAIL_HOST not set, outreach sending disabled")
	}

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	messageRepo := database.NewMessageRepository(db)
	activityRepo := database.NewActivityRepository(db)

	// 2. UseCases
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, activityRepo)
	qualifyUC := usecase.NewQualifyLeadUseCase(leadRepo, activityRepo, grokClient, producer, logger)
	draftUC := usecase.NewDraftOutreachUseCase(leadRepo, messageRepo, activityRepo, grokClient, producer, logger)
	sendUC := usecase.NewSendOutreachUseCase(leadRepo, messageRepo, activityRepo, mailer)
	stageUC := usecase.NewUpdateStageUseCase(leadRepo, activityRepo, producer, logger)
	meetingUC := usecase.NewScheduleMeetingUseCase(leadRepo, activityRepo)
	evalsUC := usecase.NewRunEvalsUseCase(grokClient)

	// 3. Handlers
	leadHandler := handlers.NewLeadHandler(createLeadUC, stageUC, meetingUC, leadRepo, messageRepo, activityRepo)
	scoreHandler := handlers.NewScoreHandler(qualifyUC)
	outreachHandler := handlers.NewOutreachHandler(draftUC, sendUC)
	evalsHandler := handlers.NewEvalsHandler(evalsUC)
	healthHandler := handlers.NewHealthHandler(db, amqpConn, cfg.XAIAPIKey != "")

	// 4. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/leads", leadHandler.HandleCreate)
	r.Get("/leads", leadHandler.HandleList)
	r.Get("/lead/{leadID}", leadHandler.HandleDetail)
	r.Post("/lead/{leadID}/score", scoreHandler.Handle)
	r.Post("/lead/{leadID}/message", outreachHandler.HandleDraft)
	r.Post("/lead/{leadID}/message/{messageID}/send", outreachHandler.HandleSend)
	r.Post("/lead/{leadID}/meeting", leadHandler.HandleMeeting)
	r.Post("/lead/{leadID}/stage", leadHandler.HandleUpdateStage)
	r.Post("/evals/run", evalsHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	logger.Info("leadflow api listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
