package dto

import "time"

// RegisterRequest entrada para registro: email + password (se hashea en el use case).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest entrada para solicitar el reset de contraseña.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPasswordResponse confirma el envío del correo de reset.
type ForgotPasswordResponse struct {
	Message string `json:"message"`
	To      string `json:"to"`
}

// ResetPasswordRequest entrada para consumir el token de reset.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// UserResponse salida de un usuario. Nunca incluye la contraseña ni su hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthResponse salida de registro/login: usuario + token de sesión.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
