package services

import (
	"database/sql"
	"fmt"

	"github.com/Talibusmani77/lohakart-inquiry/internal/domain"
	"github.com/Talibusmani77/lohakart-inquiry/internal/repos"
)

// CartStore is the explicit store contract for the session inquiry cart.
// Injected rather than ambient so the submission flow and tests can swap the
// backing persistence.
type CartStore interface {
	Ensure(sessionID string) (string, error)
	Add(cartID, productID string, qty int, uom, note string) error
	Update(cartID, productID string, qty int) error
	Remove(cartID, productID string) error
	Clear(cartID string) error
	Snapshot(cartID string) ([]repos.CartLine, error)
}

type CartService struct {
	Store CartStore
	Prods *repos.ProductRepo
}

func NewCartService(store CartStore, prods *repos.ProductRepo) *CartService {
	return &CartService{Store: store, Prods: prods}
}

// Add appends a line or merges quantity into an existing one. Minimum order
// quantity is enforced here, at add time; stock is not (quotes are negotiated,
// not fulfilled from live stock).
func (s *CartService) Add(sessionID, productID string, qty int, uom, note string) error {
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.Store.Ensure(sessionID)
	if err != nil {
		return err
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("%w: unknown product", domain.ErrNotFound)
		}
		return err
	}
	if !p.Active {
		return fmt.Errorf("%w: unknown product", domain.ErrNotFound)
	}
	if qty < p.MinOrderQty {
		return fmt.Errorf("%w: minimum order quantity for %s is %d", domain.ErrValidation, p.SKU, p.MinOrderQty)
	}
	if uom == "" {
		uom = "kg"
	}
	return s.Store.Add(cartID, productID, qty, uom, note)
}

// Update replaces the quantity for an existing line. Quantity is not checked
// against stock or MOQ at this layer.
func (s *CartService) Update(sessionID, productID string, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}
	cartID, err := s.Store.Ensure(sessionID)
	if err != nil {
		return err
	}
	return s.Store.Update(cartID, productID, qty)
}

func (s *CartService) Remove(sessionID, productID string) error {
	cartID, err := s.Store.Ensure(sessionID)
	if err != nil {
		return err
	}
	return s.Store.Remove(cartID, productID)
}

func (s *CartService) Clear(sessionID string) error {
	cartID, err := s.Store.Ensure(sessionID)
	if err != nil {
		return err
	}
	return s.Store.Clear(cartID)
}

type CartView struct {
	Items     []repos.CartLine `json:"items"`
	ItemCount int              `json:"itemCount"` // distinct lines
	TotalQty  int              `json:"totalQty"`  // sum of quantities
}

// View returns the cart with its derived counts.
func (s *CartService) View(sessionID string) (CartView, error) {
	cartID, err := s.Store.Ensure(sessionID)
	if err != nil {
		return CartView{}, err
	}
	lines, err := s.Store.Snapshot(cartID)
	if err != nil {
		return CartView{}, err
	}
	total := 0
	for _, l := range lines {
		total += l.Qty
	}
	return CartView{Items: lines, ItemCount: len(lines), TotalQty: total}, nil
}
