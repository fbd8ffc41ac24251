package repositories

import (
	"database/sql"
	"errors"

	intconfig "carpool/internal/config"
	"carpool/internal/domain"
	"carpool/internal/domain/models"
)

type UserRepo struct {
	DB *sql.DB
}

func (r UserRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const userColumns = `id, name, email, COALESCE(phone, ''), password_hash, created_at, updated_at`

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, domain.NotFoundError{Resource: "user", Err: err}
		}
		return models.User{}, err
	}
	return u, nil
}

func (r UserRepo) GetByID(id int64) (models.User, error) {
	if id <= 0 {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id)
	return scanUser(row)
}

func (r UserRepo) GetByEmail(email string) (models.User, error) {
	row := r.db().QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ? LIMIT 1`, email)
	return scanUser(row)
}

func (r UserRepo) EmailExists(email string) (bool, error) {
	var n int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE email = ?`, email).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r UserRepo) Create(u models.User) (int64, error) {
	res, err := r.db().Exec(`
        INSERT INTO users (name, email, phone, password_hash)
        VALUES (?, ?, ?, ?)
    `, u.Name, u.Email, nullIfEmpty(u.Phone), u.PasswordHash)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r UserRepo) UpdatePhone(id int64, phone string) error {
	res, err := r.db().Exec(`UPDATE users SET phone = ? WHERE id = ?`, phone, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// phone may equal the stored value; verify the row exists
		var exists int
		if err := r.db().QueryRow(`SELECT COUNT(*) FROM users WHERE id = ?`, id).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return domain.NotFoundError{Resource: "user"}
		}
	}
	return nil
}

// nullIfEmpty helps store optional strings without writing empty values.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
