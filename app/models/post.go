package models

import (
	"errors"
	"time"
	"unicode/utf8"
)

// excerptLen is the number of characters included in list excerpts.
const excerptLen = 100

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
}

// Excerpt returns the leading portion of the post content used in
// list responses.
func (p *Post) Excerpt() string {
	if utf8.RuneCountInString(p.Content) <= excerptLen {
		return p.Content
	}
	runes := []rune(p.Content)
	return string(runes[:excerptLen]) + "..."
}
