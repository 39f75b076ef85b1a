package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Talibusmani77/lohakart-inquiry/internal/domain"
	applog "github.com/Talibusmani77/lohakart-inquiry/internal/log"
	"github.com/Talibusmani77/lohakart-inquiry/internal/repos"
)

type InquiryService struct {
	Store   CartStore
	Inqs    *repos.InquiryRepo
	Replies *repos.ReplyRepo
	Users   *repos.UserRepo
}

func NewInquiryService(store CartStore, inqs *repos.InquiryRepo, replies *repos.ReplyRepo, users *repos.UserRepo) *InquiryService {
	return &InquiryService{Store: store, Inqs: inqs, Replies: replies, Users: users}
}

type SubmitInput struct {
	DeliveryAddress string
	DeliveryCity    string
	DeliveryState   string
	DeliveryPin     string
	Notes           string
}

// Submit converts the session cart into one inquiry plus one item per cart
// line. Header and items are written in a single transaction; the cart is
// cleared only after the commit succeeds.
func (s *InquiryService) Submit(sessionID, buyerID string, in SubmitInput) (domain.Inquiry, error) {
	cartID, err := s.Store.Ensure(sessionID)
	if err != nil {
		return domain.Inquiry{}, err
	}
	lines, err := s.Store.Snapshot(cartID)
	if err != nil {
		return domain.Inquiry{}, err
	}
	if len(lines) == 0 {
		return domain.Inquiry{}, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}

	companyID := ""
	if prof, err := s.Users.Profile(buyerID); err == nil {
		companyID = prof.CompanyID
	}

	inq := domain.Inquiry{
		ID:              uuid.NewString(),
		BuyerID:         buyerID,
		CompanyID:       companyID,
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		DeliveryCity:    strings.TrimSpace(in.DeliveryCity),
		DeliveryState:   strings.TrimSpace(in.DeliveryState),
		DeliveryPin:     strings.TrimSpace(in.DeliveryPin),
		Notes:           strings.TrimSpace(in.Notes),
	}

	items := make([]repos.NewItem, 0, len(lines))
	for _, l := range lines {
		qty := l.Qty
		if qty < 1 {
			qty = 1
		}
		items = append(items, repos.NewItem{
			ID:        uuid.NewString(),
			ProductID: l.ProductID,
			Qty:       qty,
			UOM:       l.UOM,
			Note:      l.Note,
		})
	}

	if _, err := s.Inqs.Create(inq, items); err != nil {
		return domain.Inquiry{}, err
	}

	// Clear only on confirmed success so a failed submit keeps the cart. The
	// inquiry stands even when the clear itself fails; log it and move on.
	if err := s.Store.Clear(cartID); err != nil {
		applog.Error(nil, "inquiry.cart.clear", err, map[string]any{"inquiry_id": inq.ID})
	}

	return s.Inqs.Get(inq.ID)
}

// Detail returns the inquiry with items and replies, visible to its buyer and
// to admins only.
type InquiryDetail struct {
	Inquiry domain.Inquiry        `json:"inquiry"`
	Items   []repos.ItemRow       `json:"items"`
	Replies []domain.InquiryReply `json:"replies"`
}

func (s *InquiryService) Detail(id, requesterID string, isAdmin bool) (InquiryDetail, error) {
	inq, err := s.Inqs.Get(id)
	if err != nil {
		return InquiryDetail{}, err
	}
	if inq.BuyerID != requesterID && !isAdmin {
		return InquiryDetail{}, domain.ErrForbidden
	}
	items, err := s.Inqs.Items(id)
	if err != nil {
		return InquiryDetail{}, err
	}
	replies, err := s.Replies.List(id)
	if err != nil {
		return InquiryDetail{}, err
	}
	return InquiryDetail{Inquiry: inq, Items: items, Replies: replies}, nil
}

func (s *InquiryService) ListForBuyer(buyerID string) ([]repos.Summary, error) {
	return s.Inqs.ListByBuyer(buyerID)
}

func (s *InquiryService) ListAll(limit int) ([]repos.Summary, error) {
	return s.Inqs.ListAll(limit)
}

// SetStatus overwrites the inquiry status. Any of the four statuses is
// acceptable from any current state; "closed" is terminal by convention only.
func (s *InquiryService) SetStatus(id, status string) error {
	if !domain.ValidStatus(status) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	return s.Inqs.UpdateStatus(id, status)
}

// PostReply appends a message to the inquiry's thread. Posting a reply does
// not transition the inquiry status; the two operations are independent.
func (s *InquiryService) PostReply(inquiryID, message string) (domain.InquiryReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.InquiryReply{}, fmt.Errorf("%w: message must not be empty", domain.ErrValidation)
	}
	if _, err := s.Inqs.Get(inquiryID); err != nil {
		return domain.InquiryReply{}, err
	}
	id := uuid.NewString()
	if err := s.Replies.Append(id, inquiryID, message); err != nil {
		return domain.InquiryReply{}, err
	}
	replies, err := s.Replies.List(inquiryID)
	if err != nil {
		return domain.InquiryReply{}, err
	}
	for _, r := range replies {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.InquiryReply{ID: id, InquiryID: inquiryID, Message: message}, nil
}

func (s *InquiryService) ListReplies(inquiryID string) ([]domain.InquiryReply, error) {
	if _, err := s.Inqs.Get(inquiryID); err != nil {
		return nil, err
	}
	return s.Replies.List(inquiryID)
}
