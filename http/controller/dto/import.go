package dto

type ImportRequestDTO struct {
	URL string `json:"url" binding:"required,url"`
	Key string `json:"key" binding:"required,min=1,max=1024"`
}
