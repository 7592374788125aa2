package usecase

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type UserUsecase struct {
	userRepo   repo.UserRepository
	bcryptCost int
}

func NewUserUsecase(userRepo repo.UserRepository, bcryptCost int) *UserUsecase {
	return &UserUsecase{userRepo: userRepo, bcryptCost: bcryptCost}
}

type UserInput struct {
	FirstName     string  `json:"first_name"`
	MiddleName    *string `json:"middle_name"`
	LastName      string  `json:"last_name"`
	Age           int     `json:"age"`
	Address       string  `json:"address"`
	ContactNumber string  `json:"contact_number"`
	Email         string  `json:"email"`
	Password      string  `json:"password"`
	Role          string  `json:"role"`
}

// requirePasswordは新規作成時true（更新時は空なら据え置き）
func validateUserInput(in UserInput, requirePassword bool) map[string]string {
	fields := map[string]string{}

	if strings.TrimSpace(in.FirstName) == "" {
		fields["first_name"] = "required"
	} else if len(in.FirstName) > 55 {
		fields["first_name"] = "must be at most 55 characters"
	}
	if in.MiddleName != nil && len(*in.MiddleName) > 55 {
		fields["middle_name"] = "must be at most 55 characters"
	}
	if strings.TrimSpace(in.LastName) == "" {
		fields["last_name"] = "required"
	} else if len(in.LastName) > 55 {
		fields["last_name"] = "must be at most 55 characters"
	}
	if in.Age <= 0 || in.Age > 120 {
		fields["age"] = "must be between 1 and 120"
	}
	if strings.TrimSpace(in.Address) == "" {
		fields["address"] = "required"
	} else if len(in.Address) > 255 {
		fields["address"] = "must be at most 255 characters"
	}
	if strings.TrimSpace(in.ContactNumber) == "" {
		fields["contact_number"] = "required"
	} else if len(in.ContactNumber) > 55 {
		fields["contact_number"] = "must be at most 55 characters"
	}

	email := strings.TrimSpace(in.Email)
	if email == "" {
		fields["email"] = "required"
	} else if !emailPattern.MatchString(email) {
		fields["email"] = "must be a valid email address"
	}

	if requirePassword && in.Password == "" {
		fields["password"] = "required"
	}
	if in.Password != "" && (len(in.Password) < 8 || len(in.Password) > 15) {
		fields["password"] = "must be 8 to 15 characters"
	}

	switch model.Role(in.Role) {
	case model.RoleCashier, model.RoleManager:
	default:
		fields["role"] = "must be one of: cashier, manager"
	}

	return fields
}

func (u *UserUsecase) CreateUser(ctx context.Context, in UserInput) (model.User, error) {
	if fields := validateUserInput(in, true); len(fields) > 0 {
		return model.User{}, NewValidationError(fields)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "hash error")
	}

	created, err := u.userRepo.Create(ctx, model.User{
		FirstName:     strings.TrimSpace(in.FirstName),
		MiddleName:    in.MiddleName,
		LastName:      strings.TrimSpace(in.LastName),
		Age:           in.Age,
		Address:       strings.TrimSpace(in.Address),
		ContactNumber: strings.TrimSpace(in.ContactNumber),
		Email:         strings.TrimSpace(in.Email),
		PasswordHash:  string(hash),
		Role:          model.Role(in.Role),
	})
	if errors.Is(err, repo.ErrDuplicate) {
		return model.User{}, NewValidationError(map[string]string{"email": "already in use"})
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

func (u *UserUsecase) UpdateUser(ctx context.Context, userID int64, in UserInput) (model.User, error) {
	if userID <= 0 {
		return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if fields := validateUserInput(in, false); len(fields) > 0 {
		return model.User{}, NewValidationError(fields)
	}

	user := model.User{
		ID:            userID,
		FirstName:     strings.TrimSpace(in.FirstName),
		MiddleName:    in.MiddleName,
		LastName:      strings.TrimSpace(in.LastName),
		Age:           in.Age,
		Address:       strings.TrimSpace(in.Address),
		ContactNumber: strings.TrimSpace(in.ContactNumber),
		Email:         strings.TrimSpace(in.Email),
		Role:          model.Role(in.Role),
	}
	//パスワードは指定があったときだけ更新
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.bcryptCost)
		if err != nil {
			return model.User{}, NewHTTPError(http.StatusInternalServerError, "hash error")
		}
		user.PasswordHash = string(hash)
	}

	err := u.userRepo.Update(ctx, user)
	if errors.Is(err, repo.ErrNotFound) {
		return model.User{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if errors.Is(err, repo.ErrDuplicate) {
		return model.User{}, NewValidationError(map[string]string{"email": "already in use"})
	}
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.userRepo.FindByID(ctx, userID)
}

func (u *UserUsecase) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := u.userRepo.ListAll(ctx)
	if err != nil {
		return []model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return users, nil
}

func (u *UserUsecase) DeleteUser(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.userRepo.SoftDelete(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
