package http

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/tuskioscos/tuskioscos-api/docs"
	"github.com/tuskioscos/tuskioscos-api/internal/application/auth"
	"github.com/tuskioscos/tuskioscos-api/internal/application/usecase"
	"github.com/tuskioscos/tuskioscos-api/pkg/logger"
)

// HealthChecker lo implementan *pgxpool.Pool y *memory.Store.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	KioscoUC  *usecase.KioscoUseCase
	CierreUC  *usecase.CierreCajaUseCase
	MetricsUC *usecase.MetricsUseCase
	Health    HealthChecker
	Log       *logger.Logger

	AppName        string
	CORSOrigin     string
	Cookie         CookieConfig
	LoginRateLimit int    // intentos por minuto e IP; <= 0 desactiva el límite
	SwaggerFile    string // si existe se sirve la UI en /docs
}

// NewApp construye la app Fiber con middlewares, rutas de operación y rutas de la API.
func NewApp(deps RouterDeps) *fiber.App {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})

	origin := deps.CORSOrigin
	if origin == "" {
		origin = "*"
	}

	metrics := NewMetrics()
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: LocalRequestID,
	}))
	app.Use(RequestLogger(log))
	app.Use(metrics.Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origin,
		AllowCredentials: origin != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if deps.SwaggerFile != "" {
		if _, err := os.Stat(deps.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.SwaggerFile,
				Path:     "docs",
				Title:    "Tus Kioscos API",
			}))
		}
	}

	app.Get("/health", healthHandler(deps.Health, deps.AppName))
	app.Get("/metrics", metrics.Handler())
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	authMW := AuthMiddleware(deps.AuthUC)

	// User: registro/login/logout públicos, perfil protegido
	user := app.Group("/user")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	user.Post("/register", authHandler.Register)
	user.Post("/login", loginLimiter(deps.LoginRateLimit), authHandler.Login)
	user.Post("/logout", authHandler.Logout)
	user.Get("/", authMW, authHandler.Profile)

	// Kioscos (protegido)
	kioscos := app.Group("/kioscos", authMW)
	kioscoHandler := NewKioscoHandler(deps.KioscoUC)
	kioscos.Get("/", kioscoHandler.List)
	kioscos.Post("/", kioscoHandler.Create)
	kioscos.Get("/:kioscoId", kioscoHandler.GetByID)
	kioscos.Put("/:kioscoId", kioscoHandler.Update)
	kioscos.Delete("/:kioscoId", kioscoHandler.Delete)

	// Métricas del kiosco (protegido)
	metricsHandler := NewMetricsHandler(deps.MetricsUC)
	kioscos.Get("/:kioscoId/metricas", metricsHandler.Get)
	kioscos.Get("/:kioscoId/metricas/pdf", metricsHandler.PDF)

	// Cierres de caja (protegido)
	cierres := app.Group("/cierreCaja", authMW)
	cierreHandler := NewCierreCajaHandler(deps.CierreUC)
	cierres.Get("/:kioscoId", cierreHandler.List)
	cierres.Post("/:kioscoId", cierreHandler.Create)
	cierres.Get("/:kioscoId/:cierreCajaId", cierreHandler.GetByID)
	cierres.Put("/:kioscoId/:cierreCajaId", cierreHandler.Update)
	cierres.Delete("/:kioscoId/:cierreCajaId", cierreHandler.Delete)
}

func loginLimiter(limit int) fiber.Handler {
	if limit <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return fiber.ErrTooManyRequests
		},
	})
}

func healthHandler(checker HealthChecker, service string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if checker != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := checker.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": service})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
