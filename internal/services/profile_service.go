package services

import (
	"database/sql"
	"fmt"

	intconfig "carpool/internal/config"
	"carpool/internal/domain"
	"carpool/internal/repositories"
	"carpool/internal/utils"
)

type ProfileService struct {
	UserRepo  repositories.UserRepo
	DB        *sql.DB
	RequestID string
}

func (s ProfileService) users() repositories.UserRepo {
	if s.UserRepo.DB != nil {
		return s.UserRepo
	}
	db := s.DB
	if db == nil {
		db = intconfig.DB
	}
	return repositories.UserRepo{DB: db}
}

// UpdatePhone saves the one profile field the app edits.
func (s ProfileService) UpdatePhone(userID int64, phone string) error {
	phone = utils.NormalizePhone(phone)
	if phone == "" {
		return domain.ValidationError{Field: "phone", Msg: "phone is required"}
	}
	if !utils.ValidPhone(phone) {
		return domain.ValidationError{Field: "phone", Msg: "invalid phone number"}
	}

	if err := s.users().UpdatePhone(userID, phone); err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		return domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "profile", "update_phone", fmt.Sprintf("user_id=%d", userID))
	return nil
}
