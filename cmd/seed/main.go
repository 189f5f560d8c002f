// seed carga datos de demostración: un usuario, un kiosco y un período de cierres de caja diarios.
//
// Uso: go run ./cmd/seed [días]
// Por defecto genera 30 días hacia atrás desde hoy (sin domingos). Usa la misma configuración
// que la API (DATABASE_URL / DB_*, JWT_SECRET) y aplica las migraciones antes de insertar.
// Es re-ejecutable: el usuario se reutiliza y los cierres de una fecha existente se sobrescriben.
package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tuskioscos/tuskioscos-api/internal/application/auth"
	"github.com/tuskioscos/tuskioscos-api/internal/application/dto"
	"github.com/tuskioscos/tuskioscos-api/internal/application/ownership"
	"github.com/tuskioscos/tuskioscos-api/internal/application/usecase"
	"github.com/tuskioscos/tuskioscos-api/internal/domain"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
	"github.com/tuskioscos/tuskioscos-api/internal/infrastructure/postgres"
	"github.com/tuskioscos/tuskioscos-api/pkg/config"
)

const (
	demoEmail    = "demo@tuskioscos.local"
	demoPassword = "demo12345"
	demoKiosco   = "Kiosco Demo"
)

func main() {
	days := 30
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "Cantidad de días inválida: %q\n", os.Args[1])
			os.Exit(1)
		}
		days = n
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Migrar: %v\n", err)
		os.Exit(1)
	}

	kioscoRepo := postgres.NewKioscoRepository(pool)
	cierreRepo := postgres.NewCierreCajaRepository(pool)
	tx := postgres.NewTxRunner(pool)
	checker := ownership.NewChecker(kioscoRepo, cierreRepo)
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
	})
	kioscoUC := usecase.NewKioscoUseCase(kioscoRepo, checker, tx)
	cierreUC := usecase.NewCierreCajaUseCase(cierreRepo, checker, tx, usecase.DuplicateOverwrite)

	userID, err := demoUser(ctx, authUC)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Usuario demo: %v\n", err)
		os.Exit(1)
	}
	kioscoID, err := demoKioscoID(ctx, kioscoUC, userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Kiosco demo: %v\n", err)
		os.Exit(1)
	}

	// Semilla fija para que dos corridas del mismo día generen los mismos montos.
	rng := rand.New(rand.NewPCG(uint64(kioscoID), 2024))
	today := entity.TruncateDay(time.Now())
	created := 0
	for i := days - 1; i >= 0; i-- {
		fecha := today.AddDate(0, 0, -i)
		if fecha.Weekday() == time.Sunday {
			continue
		}
		monto := decimal.New(int64(400000+rng.IntN(800000)), -2) // 4.000,00 a 12.000,00
		if _, err := cierreUC.Create(ctx, userID, kioscoID, dto.CreateCierreCajaRequest{
			Monto: &monto,
			Fecha: fecha.Format(entity.FechaLayout),
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Cierre %s: %v\n", fecha.Format(entity.FechaLayout), err)
			os.Exit(1)
		}
		created++
	}

	fmt.Printf("Usuario %s / %s, kiosco %d, %d cierres\n", demoEmail, demoPassword, kioscoID, created)
}

func demoUser(ctx context.Context, uc *auth.AuthUseCase) (int64, error) {
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: demoEmail, Name: "Demo", Password: demoPassword})
	if err != nil && !errors.Is(err, domain.ErrEmailAlreadyExists) {
		return 0, err
	}
	out, err := uc.Login(ctx, dto.LoginRequest{Email: demoEmail, Password: demoPassword})
	if err != nil {
		return 0, err
	}
	return out.User.ID, nil
}

func demoKioscoID(ctx context.Context, uc *usecase.KioscoUseCase, userID int64) (int64, error) {
	list, err := uc.List(ctx, userID)
	if err != nil {
		return 0, err
	}
	for _, k := range list {
		if k.Name == demoKiosco {
			return k.ID, nil
		}
	}
	k, err := uc.Create(ctx, userID, dto.KioscoRequest{Name: demoKiosco})
	if err != nil {
		return 0, err
	}
	return k.ID, nil
}
