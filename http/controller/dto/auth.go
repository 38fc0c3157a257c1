package dto

type LoginRequestDTO struct {
	Password string `json:"password" binding:"required"`
}

type LoginResponseDTO struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	ExpiresIn int    `json:"expires_in"`
}
