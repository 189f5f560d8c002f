package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tuskioscos/tuskioscos-api/internal/application/ownership"
	"github.com/tuskioscos/tuskioscos-api/internal/application/usecase"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
	"github.com/tuskioscos/tuskioscos-api/internal/infrastructure/memory"
)

type fixture struct {
	store   *memory.Store
	kioscos *usecase.KioscoUseCase
	cierres *usecase.CierreCajaUseCase
	checker *ownership.Checker
	ana     int64
	beto    int64
}

func newFixture(t *testing.T, policy usecase.DuplicatePolicy) *fixture {
	t.Helper()
	s := memory.NewStore()
	checker := ownership.NewChecker(s.Kioscos(), s.Cierres())
	f := &fixture{
		store:   s,
		checker: checker,
		kioscos: usecase.NewKioscoUseCase(s.Kioscos(), checker, s),
		cierres: usecase.NewCierreCajaUseCase(s.Cierres(), checker, s, policy),
	}
	f.ana = f.user(t, "ana@example.com")
	f.beto = f.user(t, "beto@example.com")
	return f
}

func (f *fixture) user(t *testing.T, email string) int64 {
	t.Helper()
	u := &entity.User{Email: email, Name: email, PasswordHash: "h"}
	require.NoError(t, f.store.Users().Create(context.Background(), u))
	return u.ID
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
