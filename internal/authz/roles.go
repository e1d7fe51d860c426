package authz

import "todolist/internal/models"

func IsAdmin(role models.UserRole) bool {
	return role == models.RoleRoot
}

