package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tuskioscos/tuskioscos-api/internal/application/dto"
	"github.com/tuskioscos/tuskioscos-api/internal/application/ownership"
	"github.com/tuskioscos/tuskioscos-api/internal/domain"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/repository"
)

const maxKioscoName = 100

// KioscoUseCase casos de uso CRUD de kioscos, siempre acotados al usuario autenticado.
type KioscoUseCase struct {
	repo    repository.KioscoRepository
	checker *ownership.Checker
	tx      TxRunner
}

// NewKioscoUseCase construye el caso de uso.
func NewKioscoUseCase(repo repository.KioscoRepository, checker *ownership.Checker, tx TxRunner) *KioscoUseCase {
	return &KioscoUseCase{repo: repo, checker: checker, tx: tx}
}

// List lista los kioscos del usuario.
func (uc *KioscoUseCase) List(ctx context.Context, userID int64) ([]dto.KioscoResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.KioscoResponse, 0, len(list))
	for _, k := range list {
		items = append(items, *toKioscoResponse(k))
	}
	return items, nil
}

// Get obtiene un kiosco del usuario.
func (uc *KioscoUseCase) Get(ctx context.Context, userID, kioscoID int64) (*dto.KioscoResponse, error) {
	k, err := uc.checker.CheckKiosco(ctx, userID, kioscoID)
	if err != nil {
		return nil, err
	}
	return toKioscoResponse(k), nil
}

// Create crea un kiosco a nombre del usuario.
func (uc *KioscoUseCase) Create(ctx context.Context, userID int64, in dto.KioscoRequest) (*dto.KioscoResponse, error) {
	name, err := validKioscoName(in.Name)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	k := &entity.Kiosco{
		UserID:    userID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, k); err != nil {
		return nil, err
	}
	return toKioscoResponse(k), nil
}

// Update renombra un kiosco del usuario.
func (uc *KioscoUseCase) Update(ctx context.Context, userID, kioscoID int64, in dto.KioscoRequest) (*dto.KioscoResponse, error) {
	name, err := validKioscoName(in.Name)
	if err != nil {
		return nil, err
	}
	k, err := uc.checker.CheckKiosco(ctx, userID, kioscoID)
	if err != nil {
		return nil, err
	}
	k.Name = name
	k.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, k); err != nil {
		return nil, err
	}
	return toKioscoResponse(k), nil
}

// Delete elimina el kiosco y todos sus cierres en una sola transacción: ambos o ninguno.
func (uc *KioscoUseCase) Delete(ctx context.Context, userID, kioscoID int64) error {
	if _, err := uc.checker.CheckKiosco(ctx, userID, kioscoID); err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(kioscoRepo repository.KioscoRepository, cierreRepo repository.CierreCajaRepository) error {
		if _, err := cierreRepo.DeleteByKiosco(ctx, kioscoID); err != nil {
			return err
		}
		return kioscoRepo.Delete(ctx, kioscoID)
	})
}

func validKioscoName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > maxKioscoName {
		return "", fmt.Errorf("%w: name admite hasta %d caracteres", domain.ErrInvalidInput, maxKioscoName)
	}
	return name, nil
}

func toKioscoResponse(k *entity.Kiosco) *dto.KioscoResponse {
	if k == nil {
		return nil
	}
	return &dto.KioscoResponse{
		ID:        k.ID,
		Name:      k.Name,
		UserID:    k.UserID,
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
}
