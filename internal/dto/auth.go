package dto

type RegisterRequestDTO struct {
	Login    string `json:"login" validate:"required,min=3,max=50" example:"priya"`
	Password string `json:"password" validate:"required,min=8" example:"securepassword"`
}

type RegisterResponseDTO struct {
	Message string `json:"message" example:"User registered successfully"`
}

type LoginRequestDTO struct {
	Login    string `json:"login" validate:"required,min=3,max=50" example:"priya"`
	Password string `json:"password" validate:"required,min=8" example:"securepassword"`
}

type LoginResponseDTO struct {
	Message string `json:"message" example:"Authentication successful"`
}
