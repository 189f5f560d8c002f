package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tuskioscos/tuskioscos-api/internal/application/dto"
	"github.com/tuskioscos/tuskioscos-api/internal/application/ownership"
	"github.com/tuskioscos/tuskioscos-api/internal/domain"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/entity"
	"github.com/tuskioscos/tuskioscos-api/internal/domain/repository"
)

// DuplicatePolicy decide qué pasa al registrar un segundo cierre para la misma fecha de un kiosco.
type DuplicatePolicy string

const (
	DuplicateReject    DuplicatePolicy = "reject"    // 409 DUPLICATE_CIERRE
	DuplicateOverwrite DuplicatePolicy = "overwrite" // reemplaza el monto del cierre existente
	DuplicateAllow     DuplicatePolicy = "allow"     // crea otro cierre
)

// ParseDuplicatePolicy convierte el valor de configuración.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch p := DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case DuplicateReject, DuplicateOverwrite, DuplicateAllow:
		return p, nil
	case "":
		return DuplicateReject, nil
	default:
		return "", fmt.Errorf("política de duplicados desconocida %q", s)
	}
}

// CierreCajaUseCase casos de uso de cierres de caja. Toda operación verifica la cadena
// usuario → kiosco (→ cierre) antes de tocar el store.
type CierreCajaUseCase struct {
	repo    repository.CierreCajaRepository
	checker *ownership.Checker
	tx      TxRunner
	policy  DuplicatePolicy
}

// NewCierreCajaUseCase construye el caso de uso.
func NewCierreCajaUseCase(repo repository.CierreCajaRepository, checker *ownership.Checker, tx TxRunner, policy DuplicatePolicy) *CierreCajaUseCase {
	if policy == "" {
		policy = DuplicateReject
	}
	return &CierreCajaUseCase{repo: repo, checker: checker, tx: tx, policy: policy}
}

// List lista los cierres de un kiosco del usuario, más reciente primero.
func (uc *CierreCajaUseCase) List(ctx context.Context, userID, kioscoID int64) ([]dto.CierreCajaResponse, error) {
	if _, err := uc.checker.CheckKiosco(ctx, userID, kioscoID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByKiosco(ctx, kioscoID)
	if err != nil {
		return nil, err
	}
	return toCierreResponses(list), nil
}

// Get obtiene un cierre verificando la cadena completa.
func (uc *CierreCajaUseCase) Get(ctx context.Context, userID, kioscoID, cierreID int64) (*dto.CierreCajaResponse, error) {
	c, err := uc.checker.CheckCierre(ctx, userID, kioscoID, cierreID)
	if err != nil {
		return nil, err
	}
	return toCierreResponse(c), nil
}

// Create registra un cierre para el kiosco aplicando la política de duplicados.
// Result.Created es false cuando la política sobrescribió un cierre existente.
func (uc *CierreCajaUseCase) Create(ctx context.Context, userID, kioscoID int64, in dto.CreateCierreCajaRequest) (*dto.CreateCierreCajaResult, error) {
	monto, err := validMonto(in.Monto)
	if err != nil {
		return nil, err
	}
	fecha, err := ParseFecha(in.Fecha)
	if err != nil {
		return nil, err
	}
	if _, err := uc.checker.CheckKiosco(ctx, userID, kioscoID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	nuevo := &entity.CierreCaja{
		KioscoID:  kioscoID,
		Fecha:     fecha,
		Monto:     monto,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if uc.policy == DuplicateAllow {
		if err := uc.repo.Create(ctx, nuevo); err != nil {
			return nil, err
		}
		return &dto.CreateCierreCajaResult{Cierre: toCierreResponse(nuevo), Created: true}, nil
	}

	result := &dto.CreateCierreCajaResult{}
	err = uc.tx.Run(ctx, func(_ repository.KioscoRepository, cierreRepo repository.CierreCajaRepository) error {
		existing, err := cierreRepo.FindByKioscoAndFecha(ctx, kioscoID, fecha)
		if err != nil {
			return err
		}
		if existing == nil {
			if err := cierreRepo.Create(ctx, nuevo); err != nil {
				return err
			}
			result.Cierre, result.Created = toCierreResponse(nuevo), true
			return nil
		}
		if uc.policy == DuplicateReject {
			return domain.ErrDuplicateCierre
		}
		existing.Monto = monto
		existing.UpdatedAt = now
		if err := cierreRepo.Update(ctx, existing); err != nil {
			return err
		}
		result.Cierre = toCierreResponse(existing)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Update corrige el monto de un cierre; ningún otro campo cambia.
func (uc *CierreCajaUseCase) Update(ctx context.Context, userID, kioscoID, cierreID int64, in dto.UpdateCierreCajaRequest) (*dto.CierreCajaResponse, error) {
	monto, err := validMonto(in.Monto)
	if err != nil {
		return nil, err
	}
	c, err := uc.checker.CheckCierre(ctx, userID, kioscoID, cierreID)
	if err != nil {
		return nil, err
	}
	c.Monto = monto
	c.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCierreResponse(c), nil
}

// Delete elimina un cierre verificando la cadena completa.
func (uc *CierreCajaUseCase) Delete(ctx context.Context, userID, kioscoID, cierreID int64) error {
	if _, err := uc.checker.CheckCierre(ctx, userID, kioscoID, cierreID); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, cierreID)
}

// ParseFecha acepta YYYY-MM-DD o RFC 3339 y conserva solo el día calendario.
func ParseFecha(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: fecha es requerida", domain.ErrInvalidInput)
	}
	if t, err := time.Parse(entity.FechaLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha inválida %q (formato YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return entity.TruncateDay(t), nil
}

// maxMonto es el mayor valor de NUMERIC(14,2).
var maxMonto = decimal.RequireFromString("999999999999.99")

const (
	maxMontoIntDigits = 12
	minMontoExponent  = -20
)

func validMonto(m *decimal.Decimal) (decimal.Decimal, error) {
	if m == nil {
		return decimal.Zero, fmt.Errorf("%w: monto es requerido", domain.ErrInvalidInput)
	}
	if m.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrNegativeMonto)
	}
	if m.IsZero() {
		return decimal.Zero, nil
	}
	// Los exponentes extremos se descartan antes de comparar o redondear, que reescalan el coeficiente.
	if m.NumDigits()+int(m.Exponent()) > maxMontoIntDigits {
		return decimal.Zero, fmt.Errorf("%w: monto supera el máximo %s", domain.ErrInvalidInput, maxMonto)
	}
	if m.Exponent() < minMontoExponent {
		return decimal.Zero, fmt.Errorf("%w: monto admite hasta 2 decimales", domain.ErrInvalidInput)
	}
	if m.GreaterThan(maxMonto) {
		return decimal.Zero, fmt.Errorf("%w: monto supera el máximo %s", domain.ErrInvalidInput, maxMonto)
	}
	if !m.Equal(m.Round(2)) {
		return decimal.Zero, fmt.Errorf("%w: monto admite hasta 2 decimales", domain.ErrInvalidInput)
	}
	return *m, nil
}

func toCierreResponses(list []*entity.CierreCaja) []dto.CierreCajaResponse {
	items := make([]dto.CierreCajaResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCierreResponse(c))
	}
	return items
}

func toCierreResponse(c *entity.CierreCaja) *dto.CierreCajaResponse {
	if c == nil {
		return nil
	}
	return &dto.CierreCajaResponse{
		ID:        c.ID,
		Fecha:     c.Fecha.Format(entity.FechaLayout),
		Monto:     c.Monto,
		KioscoID:  c.KioscoID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
