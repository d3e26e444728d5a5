package model

import (
	"github.com/argus-sec/argus-portal/internal/domain"
)

// User is the read-only account representation that gets embedded in audits
// and reports. Account management happens outside of this service.
type User struct {
	Id          uint   `json:"id"`
	Username    string `json:"username"`
	Firstname   string `json:"firstName"`
	Lastname    string `json:"lastName"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
}

// NewUser creates a REST API User from a domain User.
func NewUser(src *domain.User) *User {
	if src == nil {
		return nil
	}

	return &User{
		Id:          uint(src.Id),
		Username:    src.Username,
		Firstname:   src.Firstname,
		Lastname:    src.Lastname,
		Email:       src.Email,
		Role:        string(src.Role),
		DisplayName: src.DisplayName(),
	}
}
