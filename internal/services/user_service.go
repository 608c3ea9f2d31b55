package services

import (
	"strings"

	"recipebook_backend/internal/models"
	"recipebook_backend/internal/repositories"
	"recipebook_backend/internal/services/dto"
	"recipebook_backend/pkg/apperrors"

	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	CreateUser(req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetMe(userID string) (*dto.UserResponse, error)
	UpdateMe(userID string, req *dto.UpdateMeRequest) (*dto.UserResponse, error)

	// Admin console operations
	AdminCreateUser(req *dto.AdminCreateUserRequest) (*dto.AdminUserResponse, error)
	AdminGetUser(id string) (*dto.AdminUserResponse, error)
	AdminListUsers(page, pageSize int) (*dto.UserListResponse, error)
	AdminDeleteUser(id string) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// NormalizeEmail lower-cases the whole address. The domain part is not
// treated specially.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserServiceImpl) CreateUser(req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	user, err := s.createUser(req.Email, req.Password, req.Name, false, false)
	if err != nil {
		return nil, err
	}

	return &dto.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}, nil
}

// createUser is the single factory behind both the public and the admin
// create paths.
func (s *UserServiceImpl) createUser(email, password, name string, isStaff, isSuperuser bool) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.FieldValidationError("user", "email", "This field is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         name,
		IsActive:     true,
		IsStaff:      isStaff,
		IsSuperuser:  isSuperuser,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.NewAlreadyExistsError("user", "A user with this email already exists")
		}
		return nil, apperrors.InternalError(err)
	}

	return user, nil
}

func (s *UserServiceImpl) GetMe(userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	return &dto.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}, nil
}

func (s *UserServiceImpl) UpdateMe(userID string, req *dto.UpdateMeRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.UserResponse{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}, nil
}

// --- Admin console ---

func (s *UserServiceImpl) AdminCreateUser(req *dto.AdminCreateUserRequest) (*dto.AdminUserResponse, error) {
	user, err := s.createUser(req.Email, req.Password, req.Name, req.IsStaff, req.IsSuperuser)
	if err != nil {
		return nil, err
	}
	return adminUserResponse(user), nil
}

func (s *UserServiceImpl) AdminGetUser(id string) (*dto.AdminUserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return adminUserResponse(user), nil
}

func (s *UserServiceImpl) AdminListUsers(page, pageSize int) (*dto.UserListResponse, error) {
	offset := (page - 1) * pageSize

	users, err := s.userRepo.FindAll(pageSize, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	total, err := s.userRepo.CountAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.UserListResponse{
		Users:    make([]dto.AdminUserResponse, 0, len(users)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	for i := range users {
		resp.Users = append(resp.Users, *adminUserResponse(&users[i]))
	}
	return resp, nil
}

func (s *UserServiceImpl) AdminDeleteUser(id string) error {
	if err := s.userRepo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("user", "User not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func adminUserResponse(user *models.User) *dto.AdminUserResponse {
	return &dto.AdminUserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	}
}
