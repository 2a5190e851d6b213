package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Visibility controls who can see a piece of content.
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
)

// VideoMetadata is the caller-supplied description of a video, passed into
// draft creation.
type VideoMetadata struct {
	Title       string     `validate:"required,max=200"`
	Description string     `validate:"max=5000"`
	Category    Category   `validate:"required"`
	Visibility  Visibility `validate:"required,oneof=public private unlisted"`
	Language    string     `validate:"omitempty,bcp47_language_tag"`
}

var validate = validator.New()

// Validate checks the metadata against the platform's constraints.
func (m VideoMetadata) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("invalid video metadata: %w", err)
	}
	if !m.Category.Valid() {
		return fmt.Errorf("invalid video metadata: unknown category %q", m.Category)
	}
	return nil
}
