// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"skillswap/internal/cache"
	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo  repository.UserRepository
	skillRepo repository.SkillRepository
	swapRepo  repository.SwapRepository
	msgRepo   repository.AdminMessageRepository

	userService  *service.UserService
	skillService *service.SkillService
	swapService  *service.SwapService
	adminService *service.AdminService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	swapRepo := repository.NewSwapRepository(db)
	msgRepo := repository.NewAdminMessageRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("skillswap-api"),
		userRepo:       userRepo,
		skillRepo:      skillRepo,
		swapRepo:       swapRepo,
		msgRepo:        msgRepo,
	}
	server.userService = service.NewUserService(userRepo, skillRepo)
	server.skillService = service.NewSkillService(skillRepo)
	server.swapService = service.NewSwapService(swapRepo, userRepo, skillRepo)
	server.adminService = service.NewAdminService(userRepo, swapRepo, skillRepo, msgRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Tracing (span per request, X-Trace-ID response header)
	app.Use(middleware.TracingMiddleware())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "register"), s.Register)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.AuthRequired(), s.Logout)

	// Public skill catalog
	skills := api.Group("/skills")
	skills.Get("/", s.GetSkills)
	skills.Get("/categories", s.GetSkillCategories)
	skills.Get("/popular/list", s.GetPopularSkills)
	// Admin catalog management; generic /:id routes last
	skills.Post("/", s.AuthRequired(), s.AdminRequired(), s.CreateSkill)
	skills.Put("/:id", s.AuthRequired(), s.AdminRequired(), s.UpdateSkill)
	skills.Delete("/:id", s.AuthRequired(), s.AdminRequired(), s.DeleteSkill)
	skills.Get("/:id", s.GetSkill)

	// Active platform broadcasts live under the admin prefix but are public;
	// registered before the admin group so its guard never sees them
	api.Get("/admin/messages/active", s.GetActiveMessages)

	// Public user directory
	users := api.Group("/users")
	users.Get("/", s.GetUsers)

	// Own profile and skill links; /me routes must precede /users/:id
	users.Get("/me", s.AuthRequired(), s.GetMyProfile)
	users.Put("/me", s.AuthRequired(), s.UpdateMyProfile)
	users.Get("/me/skills", s.AuthRequired(), s.GetMySkills)
	users.Post("/me/skills/offered", s.AuthRequired(), s.AddOfferedSkill)
	users.Post("/me/skills/wanted", s.AuthRequired(), s.AddWantedSkill)
	users.Delete("/me/skills/offered/:skillId", s.AuthRequired(), s.RemoveOfferedSkill)
	users.Delete("/me/skills/wanted/:skillId", s.AuthRequired(), s.RemoveWantedSkill)
	users.Get("/:id", s.GetUserProfile)

	// Swap routes
	swaps := api.Group("/swaps", s.AuthRequired())
	swaps.Post("/", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_swap"), s.CreateSwap)
	swaps.Get("/my-swaps", s.GetMySwaps)
	swaps.Put("/:id/accept", s.AcceptSwap)
	swaps.Put("/:id/reject", s.RejectSwap)
	swaps.Put("/:id/cancel", s.CancelSwap)
	swaps.Put("/:id/complete", s.CompleteSwap)
	swaps.Post("/:id/rate", s.RateSwap)
	swaps.Get("/:id", s.GetSwap)

	// Admin routes
	admin := api.Group("/admin", s.AuthRequired(), s.AdminRequired())
	admin.Get("/users", s.AdminGetUsers)
	admin.Put("/users/:id/ban", s.AdminBanUser)
	admin.Get("/swaps", s.AdminGetSwaps)
	admin.Delete("/swaps/:id", s.AdminDeleteSwap)
	admin.Get("/stats", s.AdminGetStats)
	admin.Post("/messages", s.AdminCreateMessage)
	admin.Get("/messages", s.AdminGetMessages)
	admin.Put("/messages/:id", s.AdminUpdateMessage)
	admin.Delete("/messages/:id", s.AdminDeleteMessage)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API degrades gracefully without Redis, only caching and rate
		// limits are lost.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// AuthRequired returns the authentication middleware. It validates the
// bearer token, checks the revocation blacklist, loads the user row, and
// rejects banned accounts.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		tokenString := ""
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(s.config.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "skillswap-api" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token issuer"))
		}
		if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "skillswap-client" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid token audience"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid subject claim"))
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// Check JTI for revocation
		if jti, exists := claims["jti"].(string); exists && jti != "" && s.redis != nil {
			isBlacklisted, err := s.redis.Exists(c.Context(), "blacklist:"+jti).Result()
			if err == nil && isBlacklisted > 0 {
				return models.RespondWithError(c, fiber.StatusUnauthorized,
					models.NewUnauthorizedError("Token has been revoked"))
			}
		}

		user, getErr := s.userRepo.GetByID(c.Context(), uint(userID))
		if getErr != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}
		if user.IsBanned {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Account is banned"))
		}

		c.Locals("userID", uint(userID))
		c.Locals("isAdmin", user.IsAdmin)
		if jti, exists := claims["jti"].(string); exists {
			c.Locals("jti", jti)
		}
		if exp, exists := claims["exp"].(float64); exists {
			c.Locals("tokenExp", int64(exp))
		}
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that isAdmin is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		admin, _ := c.Locals("isAdmin").(bool)
		if !admin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}
		return c.Next()
	}
}

// optionalUserID attempts to extract userID from the Authorization header but
// does not enforce it. Used by public routes that show more to the owner.
func (s *Server) optionalUserID(c *fiber.Ctx) (uint, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return 0, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return 0, false
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, false
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(userID), true
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "SkillSwap API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
