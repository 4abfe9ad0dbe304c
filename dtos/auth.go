package dtos

// AdminLoginRequest is the platform admin console login.
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RestaurantLoginRequest is the dashboard login: slug plus shared password.
type RestaurantLoginRequest struct {
	Slug     string `json:"slug" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"isAvailable" binding:"required"`
}

type AuthResponse struct {
	Token      string          `json:"token"`
	Role       string          `json:"role"`
	Restaurant *RestaurantView `json:"restaurant,omitempty"`
}
