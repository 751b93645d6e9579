// Package profile turns uploaded CV bytes into text and a coarse Profile.
package profile

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/amishk599/autoapply/internal/model"
	"github.com/amishk599/autoapply/internal/vocab"
)

var (
	emailRegex = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phoneRegex = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
)

// Result is the decoded CV text and the profile extracted from it.
type Result struct {
	CVContent string
	Profile   model.Profile
}

// Ingest decodes raw upload bytes as UTF-8 and extracts a profile. Empty
// content is valid and yields the default profile.
func Ingest(data []byte) (Result, error) {
	text, err := Decode(data)
	if err != nil {
		return Result{}, fmt.Errorf("decode cv: %w", err)
	}

	return Result{CVContent: text, Profile: Extract(text)}, nil
}

// Decode converts bytes to a UTF-8 string. Invalid sequences become U+FFFD
// and a leading byte-order mark is dropped.
func Decode(data []byte) (string, error) {
	dec := transform.Chain(unicode.BOMOverride(transform.Nop), unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Extract builds a Profile from CV text using fixed patterns.
func Extract(text string) model.Profile {
	return model.Profile{
		Name:       extractName(text),
		Email:      emailRegex.FindString(text),
		Phone:      phoneRegex.FindString(text),
		Location:   vocab.DefaultLocation,
		Skills:     extractSkills(text),
		Experience: []model.Experience{vocab.PlaceholderExperience},
	}
}

// extractName returns the first non-blank line, trimmed.
func extractName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return vocab.DefaultName
}

func extractSkills(text string) []string {
	skills := vocab.ContainedIn(vocab.Skills, text)
	if skills == nil {
		return []string{}
	}
	return skills
}
