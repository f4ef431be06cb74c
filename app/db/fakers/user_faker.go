package fakers

import (
	"strings"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
)

const DefaultPassword = "gemcart123"

// UserFaker builds an unsaved user with a plain-text password; the user
// repository hashes it on create.
func UserFaker(role models.Role) *models.User {
	suffix := uuid.NewString()[:6]
	username := strings.ToLower(faker.Username()) + "_" + suffix

	return &models.User{
		Username:   username,
		Email:      username + "@example.com",
		Password:   DefaultPassword,
		FirstName:  faker.FirstName(),
		LastName:   faker.LastName(),
		Phone:      faker.Phonenumber(),
		Role:       role,
		IsActive:   true,
		IsVerified: true,
	}
}
