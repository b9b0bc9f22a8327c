package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"renthub-backend/internal/config"
	agreementHandler "renthub-backend/internal/domains/agreement/handler"
	agreementRepo "renthub-backend/internal/domains/agreement/repository"
	commissionHandler "renthub-backend/internal/domains/commission/handler"
	commissionRepo "renthub-backend/internal/domains/commission/repository"
	commissionService "renthub-backend/internal/domains/commission/service"
	"renthub-backend/internal/domains/payment/gateway/payhere"
	paymentHandler "renthub-backend/internal/domains/payment/handler"
	paymentRepo "renthub-backend/internal/domains/payment/repository"
	paymentService "renthub-backend/internal/domains/payment/service"
	propertyRepo "renthub-backend/internal/domains/property/repository"
	userHandler "renthub-backend/internal/domains/user/handler"
	userRepo "renthub-backend/internal/domains/user/repository"
	userService "renthub-backend/internal/domains/user/service"
	"renthub-backend/internal/infrastructure/cache"
	"renthub-backend/internal/infrastructure/database"
	"renthub-backend/pkg/jwt"
	"renthub-backend/pkg/logger"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every application dependency. Initialization order
// matters: config, infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config        *config.Config
	DB            *database.PostgresDB
	Redis         *cache.RedisClient
	AsynqClient   *asynq.Client
	JWTManager    *jwt.Manager
	PayHereConfig *payhere.Config

	// Repositories
	PaymentRepo    paymentRepo.PaymentRepoInterface
	WebhookRepo    paymentRepo.WebhookRepoInterface
	AgreementRepo  agreementRepo.AgreementRepoInterface
	PropertyRepo   propertyRepo.PropertyRepoInterface
	UserRepo       userRepo.UserRepoInterface
	CommissionRepo commissionRepo.ConfigRepoInterface

	// Services
	PaymentService    paymentService.PaymentServiceInterface
	SettlementService paymentService.SettlementServiceInterface
	Reconciler        paymentService.ReconcilerInterface
	Notifier          paymentService.NotifierInterface
	CommissionService commissionService.ConfigServiceInterface
	UserService       userService.UserServiceInterface

	// Handlers
	PaymentHandler      *paymentHandler.PaymentHandler
	WebhookHandler      *paymentHandler.WebhookHandler
	SettlementHandler   *paymentHandler.SettlementHandler
	AdminPaymentHandler *paymentHandler.AdminPaymentHandler
	AgreementHandler    *agreementHandler.AgreementHandler
	CommissionHandler   *commissionHandler.ConfigHandler
	UserHandler         *userHandler.UserHandler
}

// NewContainer builds the full dependency graph
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Println("🗄️  Connecting to PostgreSQL...")

	dbConfig := database.DefaultDBConfig(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Database,
		cfg.Database.SSLMode,
		cfg.Database.MaxConns,
		cfg.Database.MinConns,
	)

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE REDIS + ASYNQ
	// ========================================
	log.Println("🔴 Connecting to Redis...")

	redisClient := cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Connect(context.Background()); err != nil {
		// Redis failure is non-critical: the commission cache degrades to
		// database reads and email delivery catches up once Redis returns
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}
	c.Redis = redisClient

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// ========================================
	// STEP 4: SECURITY + GATEWAY CONFIG
	// ========================================
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	payhereConfig := payhere.NewConfig(
		cfg.PayHere.MerchantID,
		cfg.PayHere.Secret,
		cfg.PayHere.ReturnURL,
		cfg.PayHere.CancelURL,
		cfg.PayHere.NotifyURL,
	)
	payhereConfig.Sandbox = cfg.PayHere.Sandbox
	if cfg.App.Environment == "production" {
		if err := payhereConfig.Validate(); err != nil {
			return nil, fmt.Errorf("invalid PayHere config: %w", err)
		}
	}
	c.PayHereConfig = payhereConfig

	// ========================================
	// STEP 5: REPOSITORIES
	// ========================================
	log.Println("📦 Initializing repositories...")

	c.PaymentRepo = paymentRepo.NewPaymentRepository(db.Pool)
	c.WebhookRepo = paymentRepo.NewWebhookRepository(db.Pool)
	c.AgreementRepo = agreementRepo.NewAgreementRepository(db.Pool)
	c.PropertyRepo = propertyRepo.NewPropertyRepository(db.Pool)
	c.UserRepo = userRepo.NewUserRepository(db.Pool)
	c.CommissionRepo = commissionRepo.NewConfigRepository(db.Pool)
	log.Println("✅ Repositories initialized")

	// ========================================
	// STEP 6: SERVICES
	// ========================================
	log.Println("⚙️  Initializing services...")

	baseLogger := logger.New("renthub")
	c.initServices(baseLogger)
	log.Println("✅ Services initialized")

	// ========================================
	// STEP 7: HANDLERS
	// ========================================
	c.PaymentHandler = paymentHandler.NewPaymentHandler(c.PaymentService)
	c.WebhookHandler = paymentHandler.NewWebhookHandler(c.Reconciler)
	c.SettlementHandler = paymentHandler.NewSettlementHandler(c.SettlementService)
	c.AdminPaymentHandler = paymentHandler.NewAdminPaymentHandler(c.PaymentRepo, c.WebhookRepo)
	c.AgreementHandler = agreementHandler.NewAgreementHandler(c.AgreementRepo)
	c.CommissionHandler = commissionHandler.NewConfigHandler(c.CommissionService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)

	log.Println("🚀 DI Container ready")
	return c, nil
}

func (c *Container) initServices(baseLogger zerolog.Logger) {
	c.CommissionService = commissionService.NewConfigService(c.CommissionRepo, c.Redis.Client, baseLogger)
	c.Notifier = paymentService.NewAsynqNotifier(c.AsynqClient, baseLogger)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, baseLogger)

	c.PaymentService = paymentService.NewPaymentService(
		c.PaymentRepo,
		c.AgreementRepo,
		c.PropertyRepo,
		c.UserRepo,
		c.CommissionService,
		c.PayHereConfig,
		baseLogger,
	)

	c.Reconciler = paymentService.NewReconciler(
		c.PaymentRepo,
		c.WebhookRepo,
		c.AgreementRepo,
		c.PropertyRepo,
		c.UserRepo,
		c.Notifier,
		c.PayHereConfig,
		baseLogger,
	)

	c.SettlementService = paymentService.NewSettlementService(
		c.PaymentRepo,
		c.AgreementRepo,
		c.CommissionService,
		baseLogger,
	)
}

// Close releases infrastructure resources in reverse order
func (c *Container) Close() {
	if c.AsynqClient != nil {
		c.AsynqClient.Close()
	}
	if c.Redis != nil {
		c.Redis.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
