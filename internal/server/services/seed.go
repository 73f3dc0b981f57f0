package services

import "github.com/dmitrijs2005/dogcatalog/internal/server/models"

// DefaultCatalog is the built-in catalog loaded by Seed on an empty store.
// Breeds carry only a name, so the per-breed images of the source data are
// dropped on purpose; a group keeps the image of its first sub-breed.
var DefaultCatalog = []models.DogFields{
	{
		Name: "Bullenbeisser",
		Breeds: []models.Breed{
			{Name: "Bóxer alemán"},
			{Name: "Gran danés o dogo alemán"},
			{Name: "Boerboel o dogo africano"},
			{Name: "Alano español"},
			{Name: "Dogo argentino"},
		},
		Image: "boxer_german.jpg",
	},
	{
		Name: "Bulldog",
		Breeds: []models.Breed{
			{Name: "Bulldog francés"},
			{Name: "Bulldog inglés"},
		},
		Image: "french_bulldog.jpg",
	},
	{
		Name: "Dálmata",
		Breeds: []models.Breed{
			{Name: "Pointer alemán de pelo corto"},
			{Name: "Weimaraner"},
		},
		Image: "german_shorthaired_pointer.jpg",
	},
}
