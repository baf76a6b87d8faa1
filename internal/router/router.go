package router

import (
	"time"

	"dealflow/internal/cache"
	"dealflow/internal/config"
	"dealflow/internal/handler"
	"dealflow/internal/infra"
	"dealflow/internal/middleware"
	"dealflow/internal/repository"
	"dealflow/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps are the infrastructure handles the router wires into services.
// Presigner and Mail may be nil: document downloads from S3 then answer 503
// and password reset requests are accepted but no email is queued.
type Deps struct {
	Config    *config.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Cache     cache.Store
	MailCB    *infra.CircuitBreaker
	Presigner infra.Presigner
	Mail      service.EmailQueue
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(d Deps) *gin.Engine {
	cfg := d.Config
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	store := d.Cache
	if store == nil {
		store = cache.NewRedisStore(d.Redis, cfg.CacheTTL())
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(d.DB)
	resetTokenRepo := repository.NewResetTokenRepository(d.DB)
	dealRepo := repository.NewDealRepository(d.DB)
	partyRepo := repository.NewBuyingPartyRepository(d.DB)
	matchRepo := repository.NewMatchRepository(d.DB)
	contactRepo := repository.NewContactRepository(d.DB)
	activityRepo := repository.NewActivityRepository(d.DB)
	documentRepo := repository.NewDocumentRepository(d.DB)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, resetTokenRepo, d.Mail, cfg)
	dealSvc := service.NewDealService(dealRepo, matchRepo, activityRepo, documentRepo, userRepo, store)
	matchSvc := service.NewMatchService(matchRepo, dealRepo, partyRepo, store)
	partySvc := service.NewBuyingPartyService(partyRepo, store)
	contactSvc := service.NewContactService(contactRepo, dealRepo, partyRepo, matchRepo, store)
	activitySvc := service.NewActivityService(activityRepo, store)
	documentSvc := service.NewDocumentService(documentRepo, d.Presigner, cfg.PresignTTL())

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	dealsH := handler.NewDealsHandler(dealSvc)
	matchesH := handler.NewMatchesHandler(matchSvc)
	partiesH := handler.NewBuyingPartiesHandler(partySvc)
	contactsH := handler.NewContactsHandler(contactSvc)
	activitiesH := handler.NewActivitiesHandler(activitySvc)
	documentsH := handler.NewDocumentsHandler(documentSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(d.DB, d.Redis, d.MailCB))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/api/auth", middleware.LoginRateLimiter())
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.POST("/password-reset-request", authH.RequestPasswordReset)
		auth.POST("/password-reset-confirm", authH.ConfirmPasswordReset)
	}

	// Protected routes
	api := r.Group("/api", middleware.JWTAuth(cfg.JWTSecret))
	{
		api.GET("/users", usersH.List)

		deals := api.Group("/deals")
		{
			deals.GET("", dealsH.List)
			deals.POST("", dealsH.Create)
			deals.GET("/:id", dealsH.Get)
			deals.PATCH("/:id", dealsH.Update)
			deals.DELETE("/:id", dealsH.Delete)
			deals.PATCH("/:id/notes", dealsH.SaveNotes)
			deals.GET("/:id/buyers", dealsH.Buyers)
			deals.GET("/:id/buyers-with-nda", dealsH.BuyersWithNDA)
			deals.GET("/:id/pinned-documents", dealsH.PinnedDocuments)
			deals.GET("/:id/teaser.pdf", dealsH.Teaser)
		}

		matches := api.Group("/deal-buyer-matches")
		{
			matches.GET("", matchesH.List)
			matches.POST("", matchesH.Create)
			matches.PATCH("/:id", matchesH.Update)
			matches.DELETE("/:id", matchesH.Delete)
		}

		// Checklist view of a match
		api.GET("/matches/:id", matchesH.Get)
		api.PATCH("/matches/:id", matchesH.UpdateChecklist)

		parties := api.Group("/buying-parties")
		{
			parties.GET("", partiesH.List)
			parties.POST("", partiesH.Create)
			parties.GET("/:id", partiesH.Get)
			parties.DELETE("/:id", partiesH.Delete)
		}

		api.GET("/contacts", contactsH.List)
		api.POST("/contacts", contactsH.Create)

		api.GET("/activities", activitiesH.List)
		api.POST("/activities", activitiesH.Create)
		api.PATCH("/activities/:id", activitiesH.Update)

		api.GET("/documents", documentsH.List)
		api.GET("/documents/:id/download", documentsH.Download)
	}

	// Swagger UI, outside production only
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
