package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "carpool/internal/config"
	"carpool/internal/domain"
	"carpool/internal/domain/models"
	"carpool/internal/repositories"
	"carpool/internal/utils"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
)

const defaultEmailDomain = "@vitstudent.ac.in"

type AuthService struct {
	UserRepo repositories.UserRepo
	DB       *sql.DB

	// AllowedEmailDomain restricts registration to institutional addresses.
	AllowedEmailDomain string
	RequestID          string
}

func (s AuthService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AuthService) users() repositories.UserRepo {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	return repositories.UserRepo{DB: s.db()}
}

func (s AuthService) emailDomain() string {
	if s.AllowedEmailDomain != "" {
		return s.AllowedEmailDomain
	}
	return defaultEmailDomain
}

// Register creates an account after validating the institutional email
// domain and email uniqueness.
func (s AuthService) Register(in models.RegisterInput) (models.User, error) {
	name := utils.TrimOrEmpty(in.Name)
	email := strings.ToLower(utils.TrimOrEmpty(in.Email))
	phone := utils.NormalizePhone(in.Phone)

	if name == "" {
		return models.User{}, domain.ValidationError{Field: "name", Msg: "name is required"}
	}
	if email == "" {
		return models.User{}, domain.ValidationError{Field: "email", Msg: "email is required"}
	}
	if !strings.HasSuffix(email, s.emailDomain()) {
		return models.User{}, domain.ValidationError{
			Field: "email",
			Msg:   fmt.Sprintf("Please use your VIT student email (%s)", s.emailDomain()),
		}
	}
	if len(in.Password) < 6 {
		return models.User{}, domain.ValidationError{Field: "password", Msg: "password must be at least 6 characters"}
	}
	if phone != "" && !utils.ValidPhone(phone) {
		return models.User{}, domain.ValidationError{Field: "phone", Msg: "invalid phone number"}
	}

	exists, err := s.users().EmailExists(email)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}
	if exists {
		return models.User{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, domain.InternalError{Err: err}
	}

	u := models.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
	}
	id, err := s.users().Create(u)
	if err != nil {
		// a concurrent registration can slip past EmailExists and hit
		// the unique key instead
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
			return models.User{}, domain.ConflictError{Resource: "user", Msg: "email already registered"}
		}
		return models.User{}, domain.InternalError{Err: err}
	}
	u.ID = id

	utils.LogEvent(s.RequestID, "auth", "register", fmt.Sprintf("user_id=%d", id))
	return u, nil
}

// Login verifies credentials and returns the account. The caller must not
// distinguish unknown email from wrong password.
func (s AuthService) Login(email, password string) (models.User, error) {
	email = strings.ToLower(utils.TrimOrEmpty(email))

	u, err := s.users().GetByEmail(email)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.User{}, domain.UnauthorizedError{Msg: "invalid email or password"}
		}
		return models.User{}, domain.InternalError{Err: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return models.User{}, domain.UnauthorizedError{Msg: "invalid email or password"}
	}

	utils.LogEvent(s.RequestID, "auth", "login", fmt.Sprintf("user_id=%d", u.ID))
	return u, nil
}
