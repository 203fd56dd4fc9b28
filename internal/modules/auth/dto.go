package auth

// RegisterDTO is the author registration payload.
type RegisterDTO struct {
	Name     string `json:"name"     binding:"required,min=8"`
	Email    string `json:"email"    binding:"required,email"`
	Phone    string `json:"phone"    binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginDTO is the credential payload for both login routes.
type LoginDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileDTO carries profile fields; accepted as JSON or multipart form.
type UpdateProfileDTO struct {
	Name  string `json:"name"  form:"name"`
	Email string `json:"email" form:"email"`
	Phone string `json:"phone" form:"phone"`
	About string `json:"about" form:"about"`
}

// UpdatePasswordDTO changes the account password after verifying the current one.
type UpdatePasswordDTO struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	Password        string `json:"password"        binding:"required,min=6"`
}
