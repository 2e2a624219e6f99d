package repository

import (
	"database/sql"
	"errors"

	"coscribe/internal/auth/model"
	"coscribe/pkg/logger"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("user not found")

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(email, passwordHash string) (*model.User, error) {
	user := &model.User{ID: uuid.NewString(), Email: email, Password: passwordHash}
	_, err := r.DB.Exec(`INSERT INTO users (id, email, password) VALUES ($1, $2, $3)`,
		user.ID, user.Email, user.Password)
	if err != nil {
		logger.Sugar.Errorf("Failed to create user %s: %v", email, err)
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.QueryRow(`SELECT id, email, password FROM users WHERE email = $1`, email).
		Scan(&user.ID, &user.Email, &user.Password)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get user by email %s: %v", email, err)
		return nil, err
	}
	return &user, nil
}

// FindUserIDByEmail is the lookup the document-sharing flow uses to resolve
// an invitee's email to an identity.
func (r *UserRepository) FindUserIDByEmail(email string) (string, error) {
	var id string
	err := r.DB.QueryRow(`SELECT id FROM users WHERE email = $1`, email).Scan(&id)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to find user by email %s: %v", email, err)
		return "", err
	}
	return id, nil
}

func (r *UserRepository) List() ([]model.UserInfo, error) {
	rows, err := r.DB.Query(`SELECT id, email FROM users ORDER BY email ASC`)
	if err != nil {
		logger.Sugar.Errorf("Failed to list users: %v", err)
		return nil, err
	}
	defer rows.Close()

	users := []model.UserInfo{}
	for rows.Next() {
		var u model.UserInfo
		if err := rows.Scan(&u.ID, &u.Email); err != nil {
			continue
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
