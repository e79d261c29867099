package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ticketforge/ticketforge/docs"
	v1 "github.com/ticketforge/ticketforge/internal/api/handler/v1"
	"github.com/ticketforge/ticketforge/internal/api/middleware"
	"github.com/ticketforge/ticketforge/internal/cache"
	"github.com/ticketforge/ticketforge/internal/config"
	"github.com/ticketforge/ticketforge/internal/events"
	"github.com/ticketforge/ticketforge/internal/payment"
	"github.com/ticketforge/ticketforge/internal/repository"
	"github.com/ticketforge/ticketforge/internal/repository/dao"
	"github.com/ticketforge/ticketforge/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db), dao.NewLedgerDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(db))
	marketRepo := repository.NewMarketplaceRepository(dao.NewMarketplaceDAO(db))

	eventCache := s.initEventCache()
	publisher, err := s.initPublisher()
	if err != nil {
		return nil, err
	}

	authHandler := v1.NewAuthHandler(conf.API, service.NewAuthService(userRepo))
	userHandler := v1.NewUserHandler(
		service.NewUserService(userRepo),
		service.NewWalletService(userRepo, payment.NewStripeGateway(conf.Stripe), conf.Stripe.CentsPerETH),
	)
	eventHandler := v1.NewEventHandler(
		service.NewEventRegistryService(eventRepo, userRepo, eventCache, publisher),
	)
	ticketHandler := v1.NewTicketHandler(
		service.NewTicketLedgerService(ticketRepo, eventRepo, userRepo, eventCache, publisher),
	)
	marketplaceHandler := v1.NewMarketplaceHandler(
		service.NewMarketplaceService(marketRepo, ticketRepo, eventRepo, userRepo, eventCache, publisher),
	)

	s.MountHandlers(authHandler, userHandler, eventHandler, ticketHandler, marketplaceHandler)

	return s, nil
}

func (s *Server) initEventCache() service.EventCache {
	if s.Config.Redis == nil || s.Config.Redis.Addr == "" {
		return cache.NopEventCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr: s.Config.Redis.Addr,
	})

	return cache.NewEventCache(client)
}

func (s *Server) initPublisher() (events.Publisher, error) {
	if s.Config.Kafka == nil || len(s.Config.Kafka.Brokers) == 0 {
		zap.L().Info("no kafka brokers configured, facts will not be published")

		return events.NopPublisher{}, nil
	}

	return events.NewKafkaPublisher(s.Config.Kafka.Brokers, nil)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(authHandler *v1.AuthHandler, userHandler *v1.UserHandler, eventHandler *v1.EventHandler, ticketHandler *v1.TicketHandler, marketplaceHandler *v1.MarketplaceHandler) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/:userID", userHandler.HandleGetUser)
		authed.GET("/wallet/ledger", userHandler.HandleGetLedger)
		authed.POST("/wallet/deposit", userHandler.HandleDeposit)

		authed.GET("/events", eventHandler.HandleGetOrganizerEvents)
		authed.POST("/events", eventHandler.HandleCreateEvent)
		authed.GET("/events/:eventID", eventHandler.HandleGetEvent)
		authed.PUT("/events/:eventID", eventHandler.HandleUpdateEvent)
		authed.DELETE("/events/:eventID", eventHandler.HandleCancelEvent)
		authed.POST("/events/:eventID/withdraw", eventHandler.HandleWithdrawProceeds)

		authed.GET("/tickets", ticketHandler.HandleGetOwnedTickets)
		authed.POST("/tickets", ticketHandler.HandleMintTicket)
		authed.GET("/tickets/:tokenID", ticketHandler.HandleGetTicket)
		authed.POST("/tickets/:tokenID/transfer", ticketHandler.HandleTransferTicket)
		authed.POST("/tickets/:tokenID/used", ticketHandler.HandleMarkUsed)
		authed.POST("/tickets/:tokenID/refund", ticketHandler.HandleRequestRefund)

		authed.POST("/marketplace/listings", marketplaceHandler.HandleListTicket)
		authed.GET("/marketplace/listings/:collection/:tokenID", marketplaceHandler.HandleGetListing)
		authed.DELETE("/marketplace/listings/:collection/:tokenID", marketplaceHandler.HandleCancelListing)
		authed.POST("/marketplace/listings/:collection/:tokenID/buy", marketplaceHandler.HandleBuyTicket)
		authed.POST("/marketplace/offers/:collection/:tokenID", marketplaceHandler.HandleMakeOffer)
		authed.GET("/marketplace/offers/:collection/:tokenID", marketplaceHandler.HandleGetOffer)
		authed.DELETE("/marketplace/offers/:collection/:tokenID", marketplaceHandler.HandleCancelOffer)
		authed.POST("/marketplace/offers/:collection/:tokenID/accept", marketplaceHandler.HandleAcceptOffer)

		authed.GET("/marketplace/config", marketplaceHandler.HandleGetConfig)
		authed.POST("/marketplace/admin/initialize", marketplaceHandler.HandleInitialize)
		authed.PUT("/marketplace/admin/fee-recipient", marketplaceHandler.HandleSetFeeRecipient)
		authed.PUT("/marketplace/admin/fee-bps", marketplaceHandler.HandleSetFeeBps)
		authed.PUT("/marketplace/admin/events/:eventID/royalty", marketplaceHandler.HandleSetEventRoyalty)
		authed.POST("/marketplace/admin/price-ceiling", marketplaceHandler.HandleTogglePriceCeiling)
		authed.POST("/marketplace/admin/pause", marketplaceHandler.HandleTogglePause)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "TicketForge API"
	docs.SwaggerInfo.Description = "Ticket lifecycle and marketplace engine."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
