package dto

// CreateUserRequest is the public registration payload. Password is
// write-only and must be at least 5 characters.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
	Name     string `json:"name"`
}

// UpdateMeRequest is a partial profile update. Nil fields stay untouched;
// a supplied password is rehashed.
type UpdateMeRequest struct {
	Name     *string `json:"name"`
	Password *string `json:"password" validate:"omitempty,min=5"`
}

// AdminCreateUserRequest extends registration with staff flags. Admin only.
type AdminCreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=5"`
	Name        string `json:"name"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AdminUserResponse adds the account flags for the admin console.
type AdminUserResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	IsActive    bool   `json:"is_active"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// UserListResponse is the paginated admin listing.
type UserListResponse struct {
	Users    []AdminUserResponse `json:"users"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}
