package fakers

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var (
	pieces    = []string{"Ring", "Pendant", "Necklace", "Bracelet", "Earrings", "Brooch", "Anklet", "Bangle"}
	materials = []string{"14k gold", "18k gold", "Sterling silver", "Platinum", "Rose gold", "Titanium"}
	gemstones = []string{"Diamond", "Sapphire", "Ruby", "Emerald", "Opal", "Amethyst", "Tanzanite", "Pearl", ""}
	sizes     = []string{"5", "6", "7", "8", "16in", "18in", "One size", ""}
)

func pick(options []string) string {
	return options[rand.Intn(len(options))]
}

// ProductFaker builds an unsaved jewelry product owned by sellerID.
func ProductFaker(sellerID uint, categories ...models.Category) *models.Product {
	material := pick(materials)
	gemstone := pick(gemstones)
	piece := pick(pieces)

	title := strings.TrimSpace(fmt.Sprintf("%s %s %s", material, gemstone, piece))
	sku := strings.ToUpper(slug.Make(piece)[:3] + "-" + uuid.NewString()[:8])

	return &models.Product{
		Title:          title,
		Description:    faker.Paragraph(),
		Price:          fakePrice(),
		InventoryCount: rand.Intn(25),
		Sku:            sku,
		Weight:         decimal.NewFromFloat(rand.Float64() * 50).Round(2),
		Material:       material,
		Gemstone:       gemstone,
		Size:           pick(sizes),
		IsActive:       rand.Intn(10) > 0,
		IsFeatured:     rand.Intn(5) == 0,
		SellerID:       sellerID,
		Categories:     categories,
	}
}

// fakePrice returns a price between 20.00 and 5000.00.
func fakePrice() decimal.Decimal {
	cents := 2000 + rand.Int63n(498000)
	return decimal.New(cents, -2)
}
