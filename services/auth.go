package services

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bobinette/deptlib"
	"github.com/bobinette/deptlib/errors"
)

type Encoder interface {
	Encode(userID int, email, role string) (string, error)
}

var errInvalidCredentials = errors.New("invalid credentials", errors.Unauthorized())

// RegisterForm is what an admin fills to create an account.
type RegisterForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
	Role     string `json:"role" validate:"required,oneof=admin author staff"`

	// ThesisDefenseDate is formatted as 2006-01-02, empty when the user has
	// not defended yet.
	ThesisDefenseDate string `json:"thesisDefenseDate" validate:"omitempty,datetime=2006-01-02"`
}

type AuthService struct {
	users   deptlib.UserRepository
	authors deptlib.AuthorRepository

	encoder Encoder
}

func NewAuthService(users deptlib.UserRepository, authors deptlib.AuthorRepository, encoder Encoder) *AuthService {
	return &AuthService{
		users:   users,
		authors: authors,
		encoder: encoder,
	}
}

// Login checks the password of the user and returns a new token. Both an
// unknown email and a wrong password give the same error.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return "", err
	} else if user.ID == 0 {
		return "", errInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return "", errInvalidCredentials
	}

	return s.encoder.Encode(user.ID, user.Email, user.Role)
}

func (s *AuthService) Register(caller deptlib.Identity, form RegisterForm) (deptlib.User, error) {
	if err := requireAdmin(caller); err != nil {
		return deptlib.User{}, err
	}

	return s.CreateUser(form)
}

// CreateUser registers a new account without any privilege check. When the
// role is author, the matching author record is created and linked.
func (s *AuthService) CreateUser(form RegisterForm) (deptlib.User, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := validateRecord("user", form); err != nil {
		return deptlib.User{}, err
	}

	existing, err := s.users.GetByEmail(form.Email)
	if err != nil {
		return deptlib.User{}, err
	} else if existing.ID != 0 {
		return deptlib.User{}, errors.New(fmt.Sprintf("email %s already registered", form.Email), errors.BadRequest())
	}

	var defense *time.Time
	if form.ThesisDefenseDate != "" {
		d, err := time.Parse("2006-01-02", form.ThesisDefenseDate)
		if err != nil {
			return deptlib.User{}, errors.New("invalid thesis defense date", errors.BadRequest(), errors.WithCause(err))
		}
		defense = &d
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return deptlib.User{}, err
	}

	user := deptlib.User{
		Email:             form.Email,
		Name:              form.Name,
		Phone:             form.Phone,
		Position:          form.Position,
		Role:              form.Role,
		PasswordHash:      string(hash),
		ThesisDefenseDate: defense,
	}

	if user.Role == deptlib.RoleAuthor {
		author := deptlib.Author{
			Name:              form.Name,
			Phone:             form.Phone,
			Position:          form.Position,
			ThesisDefenseDate: defense,
		}
		if err := s.authors.Upsert(&author); err != nil {
			return deptlib.User{}, err
		}
		user.AuthorID = author.ID
	}

	if err := s.users.Upsert(&user); err != nil {
		return deptlib.User{}, err
	}

	return user.Public(), nil
}

func (s *AuthService) Me(caller deptlib.Identity) (deptlib.User, error) {
	user, err := s.users.Get(caller.UserID)
	if err != nil {
		return deptlib.User{}, err
	} else if user.ID == 0 {
		return deptlib.User{}, errNotFound("user", caller.UserID)
	}

	return user.Public(), nil
}

// Token issues a token for the user without checking a password.
func (s *AuthService) Token(userID int) (string, error) {
	user, err := s.users.Get(userID)
	if err != nil {
		return "", err
	} else if user.ID == 0 {
		return "", errNotFound("user", userID)
	}

	return s.encoder.Encode(user.ID, user.Email, user.Role)
}
