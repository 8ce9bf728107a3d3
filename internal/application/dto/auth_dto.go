package dto

// RegisterRequest input for registration (password in the clear, hashed in
// the use case).
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest input for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest input for profile update; empty fields keep their
// current values.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRoleResponse one role grant on a user.
type UserRoleResponse struct {
	Role     string `json:"role"`
	ObjectID int64  `json:"objectId,omitempty"`
}

// UserResponse user output; password is never included.
type UserResponse struct {
	ID    int64              `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Roles []UserRoleResponse `json:"roles"`
}

// AuthResponse register/login output.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
