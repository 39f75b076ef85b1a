package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Talibusmani77/lohakart-inquiry/internal/domain"
	"github.com/Talibusmani77/lohakart-inquiry/internal/repos"
)

type PriceService struct {
	Prices *repos.PriceRepo
}

func NewPriceService(prices *repos.PriceRepo) *PriceService { return &PriceService{Prices: prices} }

func (s *PriceService) Latest(limit int) ([]domain.PricePoint, error) {
	return s.Prices.Latest(limit)
}

// Record stores a new reference price point. The price must parse as a
// positive decimal; it is normalized before storage.
func (s *PriceService) Record(metal, price, unit, currency, source string) (domain.PricePoint, error) {
	metal = strings.TrimSpace(metal)
	if metal == "" {
		return domain.PricePoint{}, fmt.Errorf("%w: metal is required", domain.ErrValidation)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil || d.Sign() <= 0 {
		return domain.PricePoint{}, fmt.Errorf("%w: price must be a positive number", domain.ErrValidation)
	}
	if unit == "" {
		unit = "kg"
	}
	if currency == "" {
		currency = "INR"
	}
	p := domain.PricePoint{
		ID:           uuid.NewString(),
		Metal:        metal,
		PricePerUnit: d.String(),
		Unit:         unit,
		Currency:     currency,
		Source:       strings.TrimSpace(source),
	}
	if err := s.Prices.Insert(p); err != nil {
		return domain.PricePoint{}, err
	}
	return p, nil
}
