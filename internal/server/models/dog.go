// Package models holds the server-side domain types shared by repositories,
// services and the HTTP layer.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/dogcatalog/internal/common"
)

// Breed is a named sub-breed of a dog group.
type Breed struct {
	Name string `json:"name" jsonschema:"minLength=1,pattern=\\S"`
}

// Dog is one catalog entry: a breed group with its ordered sub-breeds and an
// image reference (URL or object key).
type Dog struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Breeds    []Breed    `json:"breeds"`
	Image     string     `json:"image"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// DogFields is the caller-supplied part of a Dog, i.e. what create and update
// accept. Server-managed fields (id, timestamps) are not part of it.
type DogFields struct {
	Name   string  `json:"name" jsonschema:"minLength=1,pattern=\\S"`
	Breeds []Breed `json:"breeds" jsonschema:"minItems=1"`
	Image  string  `json:"image" jsonschema:"minLength=1,pattern=\\S"`
}

// Fields returns the caller-supplied part of d.
func (d *Dog) Fields() DogFields {
	return DogFields{Name: d.Name, Breeds: d.Breeds, Image: d.Image}
}

// Validate checks required fields. The returned error wraps
// common.ErrorBadRequest.
func (f DogFields) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name is required", common.ErrorBadRequest)
	}
	if len(f.Breeds) == 0 {
		return fmt.Errorf("%w: breeds must not be empty", common.ErrorBadRequest)
	}
	for i, b := range f.Breeds {
		if strings.TrimSpace(b.Name) == "" {
			return fmt.Errorf("%w: breeds[%d].name is required", common.ErrorBadRequest, i)
		}
	}
	if strings.TrimSpace(f.Image) == "" {
		return fmt.Errorf("%w: image is required", common.ErrorBadRequest)
	}
	return nil
}

// NewDog builds an unsaved entry from caller input.
func NewDog(f DogFields) *Dog {
	breeds := make([]Breed, len(f.Breeds))
	copy(breeds, f.Breeds)
	return &Dog{Name: f.Name, Breeds: breeds, Image: f.Image}
}
