package services

import (
	"testing"

	"carpool/internal/domain"
	"carpool/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestUpdatePhoneValidation(t *testing.T) {
	svc := ProfileService{}

	if err := svc.UpdatePhone(1, "  "); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for empty phone, got %v", err)
	}
	if err := svc.UpdatePhone(1, "12ab34"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for non-numeric phone, got %v", err)
	}
}

func TestUpdatePhoneSuccess(t *testing.T) {
	db, mock := newMockDB(t)
	svc := ProfileService{UserRepo: repositories.UserRepo{DB: db}, DB: db}

	mock.ExpectExec("UPDATE users SET phone").WithArgs("9876543210", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.UpdatePhone(1, "98765 43210"); err != nil {
		t.Fatalf("UpdatePhone returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdatePhoneUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	svc := ProfileService{UserRepo: repositories.UserRepo{DB: db}, DB: db}

	mock.ExpectExec("UPDATE users SET phone").WithArgs("9876543210", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("COUNT\\(\\*\\) FROM users").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	err := svc.UpdatePhone(99, "9876543210")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
