package fakers

import (
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/gosimple/slug"
)

var CategoryNames = []string{"Rings", "Necklaces", "Earrings", "Bracelets", "Watches", "Engagement", "Vintage"}

func CategoryFaker(name string, parentID *uint, sortOrder int) *models.Category {
	return &models.Category{
		Name:        name,
		Slug:        slug.Make(name),
		Description: faker.Sentence(),
		ParentID:    parentID,
		IsActive:    true,
		SortOrder:   sortOrder,
	}
}
