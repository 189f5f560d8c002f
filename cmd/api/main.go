// @title           Tus Kioscos API
// @version         1.0
// @description     API de cierres de caja diarios por kiosco.
// @BasePath        /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tuskioscos/tuskioscos-api/internal/application/auth"
	"github.com/tuskioscos/tuskioscos-api/internal/application/ownership"
	"github.com/tuskioscos/tuskioscos-api/internal/application/usecase"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/repository"
	"github.com/tuskioscos/tuskioscos-api/internal/infrastructure/memory"
	infrapdf "github.com/tuskioscos/tuskioscos-api/internal/infrastructure/pdf"
	"github.com/tuskioscos/tuskioscos-api/internal/infrastructure/postgres"
	httpRouter "github.com/tuskioscos/tuskioscos-api/internal/interfaces/http"
	"github.com/tuskioscos/tuskioscos-api/pkg/config"
	"github.com/tuskioscos/tuskioscos-api/pkg/logger"
)

// stores repositorios y transacciones del driver elegido.
type stores struct {
	users   repository.UserRepository
	kioscos repository.KioscoRepository
	cierres repository.CierreCajaRepository
	tx      usecase.TxRunner
	health  httpRouter.HealthChecker
	close   func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	policy, err := usecase.ParseDuplicatePolicy(cfg.Cierres.DuplicatePolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("política de cierres duplicados")
	}

	checker := ownership.NewChecker(st.kioscos, st.cierres)
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	kioscoUC := usecase.NewKioscoUseCase(st.kioscos, checker, st.tx)
	cierreUC := usecase.NewCierreCajaUseCase(st.cierres, checker, st.tx, policy)
	metricsUC := usecase.NewMetricsUseCase(st.cierres, checker, infrapdf.NewMarotoMetricsReport(cfg.App.Name))

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AuthUC:    authUC,
		KioscoUC:  kioscoUC,
		CierreUC:  cierreUC,
		MetricsUC: metricsUC,
		Health:    st.health,
		Log:       log,

		AppName:    cfg.App.Name,
		CORSOrigin: cfg.HTTP.CORSOrigin,
		Cookie: httpRouter.CookieConfig{
			Secure:     cfg.HTTP.CookieSecure,
			ExpMinutes: cfg.JWT.Expiration,
		},
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
		SwaggerFile:    "./docs/swagger.json",
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.DB.Driver == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &stores{
			users:   s.Users(),
			kioscos: s.Kioscos(),
			cierres: s.Cierres(),
			tx:      s,
			health:  s,
			close:   func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &stores{
		users:   postgres.NewUserRepository(pool),
		kioscos: postgres.NewKioscoRepository(pool),
		cierres: postgres.NewCierreCajaRepository(pool),
		tx:      postgres.NewTxRunner(pool),
		health:  pool,
		close:   pool.Close,
	}, nil
}
