package dtos

import "time"

type JobCreationRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
	JobTitle    string `json:"jobTitle" binding:"required"`
	Status      string `json:"status"` // Defaults to "Applied" if empty
}

// JobUpdateRequest is a partial update. A nil field was not sent.
type JobUpdateRequest struct {
	CompanyName *string `json:"companyName"`
	JobTitle    *string `json:"jobTitle"`
	Status      *string `json:"status"`
}

type JobListQuery struct {
	Status string `form:"status"`
	Query  string `form:"q"`
}

type JobStats struct {
	Total     int64 `json:"total"`
	Applied   int64 `json:"applied"`
	Interview int64 `json:"interview"`
	Offer     int64 `json:"offer"`
	Rejected  int64 `json:"rejected"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"tokenType"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
