package dto

type AddAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type AdminResponse struct {
	Email   string `json:"email"`
	AddedBy string `json:"added_by"`
	AddedAt string `json:"added_at"`
}
