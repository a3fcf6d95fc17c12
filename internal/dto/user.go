package dto

import (
	"github.com/yukikurage/task-tracker/internal/models"
	"github.com/yukikurage/task-tracker/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
}

// SessionDTO represents the logged-in session
type SessionDTO struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	IsAdmin  bool        `json:"is_admin"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		Username: user.Username,
		Role:     user.Role,
	}
}

// ToUserDTOs converts users to DTOs
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = ToUserDTO(u)
	}
	return out
}

// ToSessionDTO converts a Session to SessionDTO
func ToSessionDTO(sess services.Session) SessionDTO {
	return SessionDTO{
		Username: sess.Username,
		Role:     sess.Role,
		IsAdmin:  sess.IsAdmin(),
	}
}
