package dto

type RegisterRequestDTO struct {
	Username string `json:"username" binding:"required,max=30"`
	Password string `json:"password" binding:"required"`
}

type LoginRequestDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
