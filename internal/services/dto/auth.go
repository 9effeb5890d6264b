package dto

type RegisterRequest struct {
	Username   string   `json:"username" validate:"required,min=3,max=50"`
	Email      string   `json:"email" validate:"required,email"`
	Password   string   `json:"password" validate:"required,min=8"`
	FirstName  string   `json:"firstName" validate:"max=50"`
	LastName   string   `json:"lastName" validate:"max=50"`
	IsStudent  *bool    `json:"isStudent"`
	University string   `json:"university" validate:"max=100"`
	Course     string   `json:"course" validate:"max=100"`
	Year       *int     `json:"year" validate:"omitempty,min=1,max=6"`
	Phone      string   `json:"phone" validate:"max=15"`
	Skills     []string `json:"skills" validate:"max=20,dive,max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}
