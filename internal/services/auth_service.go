package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Talibusmani77/lohakart-inquiry/internal/domain"
	"github.com/Talibusmani77/lohakart-inquiry/internal/repos"
)

var (
	ErrBadCreds   = errors.New("invalid email or password")
	ErrEmailTaken = errors.New("email already registered")
)

type AuthService struct {
	Users *repos.UserRepo
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Company  string
	GST      string
	City     string
	State    string
}

// Register creates the user, a profile, and optionally a company record, and
// grants the baseline "user" role. All rows land in one transaction; a raced
// duplicate email comes back as ErrEmailTaken, same as the pre-check.
func (s *AuthService) Register(sid string, in RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if existing, err := s.Users.ByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return nil, err
	}

	userID := uuid.NewString()
	acct := repos.NewAccount{
		UserID:    userID,
		Email:     email,
		Hash:      string(hash),
		Profile:   domain.Profile{UserID: userID, Name: strings.TrimSpace(in.Name), Phone: in.Phone},
		Role:      domain.RoleUser,
		SessionID: sid,
	}
	if strings.TrimSpace(in.Company) != "" {
		companyID := uuid.NewString()
		acct.Company = &domain.Company{
			ID: companyID, Name: strings.TrimSpace(in.Company), GST: in.GST, City: in.City, State: in.State,
		}
		acct.Profile.CompanyID = companyID
	}

	if err := s.Users.CreateAccount(acct); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &domain.User{ID: userID, Email: email}, nil
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
