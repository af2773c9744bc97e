package router

import (
	"time"

	"schoolcash/internal/audit"
	"schoolcash/internal/config"
	"schoolcash/internal/event"
	"schoolcash/internal/handler"
	"schoolcash/internal/infra"
	"schoolcash/internal/middleware"
	"schoolcash/internal/repository"
	"schoolcash/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Services exposes the long-lived services the server entrypoint drives
// directly: the register engine's bootstrap and the admin bootstrap seed.
type Services struct {
	Register service.RegisterService
	Admin    service.AdminService
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, loc *time.Location) (*gin.Engine, *Services) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	reporter := audit.NewReporter(rdb)
	bus := event.NewBus()
	renderer := infra.NewReportRenderer(cfg.SchoolName)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	registerRepo := repository.NewRegisterRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	adminSvc := service.NewAdminService(adminRepo, reporter)
	incomeSvc := service.NewIncomeService(incomeRepo, bus, reporter, loc)
	expenseSvc := service.NewExpenseService(expenseRepo, bus, reporter, loc)
	registerSvc := service.NewRegisterService(registerRepo, incomeRepo, expenseRepo, reporter, loc)
	reportSvc := service.NewReportService(incomeRepo, expenseRepo, reporter, renderer)

	// Every income/expense mutation flows through the bus into the register
	// engine, which recomputes totals and fans snapshots out to SSE clients.
	bus.Subscribe(registerSvc.HandleTransactionEvent)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUserHandler(authSvc)
	adminsH := handler.NewAdminHandler(adminSvc)
	incomesH := handler.NewIncomeHandler(incomeSvc)
	expensesH := handler.NewExpenseHandler(expenseSvc)
	registerH := handler.NewRegisterHandler(registerSvc)
	streamH := handler.NewStreamHandler(registerSvc)
	reportsH := handler.NewReportHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	adminMW := middleware.RequireAdmin(adminSvc)
	v1 := r.Group("/v1", jwtMW)
	{
		// Register: any authenticated staff can read the live state
		v1.GET("/register", registerH.Snapshot)
		v1.GET("/register/stream", streamH.Register)

		// Incomes: staff record and read, only admins delete
		v1.POST("/incomes", incomesH.Create)
		v1.GET("/incomes", incomesH.List)
		v1.DELETE("/incomes/:id", adminMW, incomesH.Delete)

		// Expenses: same policy as incomes
		v1.POST("/expenses", expensesH.Create)
		v1.GET("/expenses", expensesH.List)
		v1.DELETE("/expenses/:id", adminMW, expensesH.Delete)

		// Reports: read-only for all staff
		v1.GET("/reports", reportsH.Generate)
		v1.GET("/reports/export", reportsH.Export)

		// Admin policy store
		admins := v1.Group("/admins", adminMW)
		{
			admins.GET("", adminsH.List)
			admins.POST("", adminsH.Add)
			admins.DELETE("/:email", adminsH.Remove)
		}

		// Staff accounts
		users := v1.Group("/users", adminMW)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, &Services{Register: registerSvc, Admin: adminSvc}
}
