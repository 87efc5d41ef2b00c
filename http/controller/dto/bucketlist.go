package dto

type CreateBucketlistRequestDTO struct {
	Name string `json:"name" binding:"required,max=120"`
}

type UpdateBucketlistRequestDTO struct {
	Name string `json:"name" binding:"required,max=120"`
}
