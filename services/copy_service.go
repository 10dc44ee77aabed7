package services

import (
	"fmt"
	"strings"
	"unicode"
)

// CopyService is the stubbed AI copy generator: a deterministic transform of
// the prompt into a fixed set of suggestions. It performs no I/O and calls
// no model; the interface is what matters until a real provider is wired in.
type CopyService struct{}

func NewCopyService() *CopyService {
	return &CopyService{}
}

// GenerateSuggestions turns a non-empty prompt into three ad-copy variants.
// The same prompt always yields the same suggestions.
func (s *CopyService) GenerateSuggestions(prompt string) ([]string, error) {
	p := strings.TrimSpace(prompt)
	if p == "" {
		return nil, validationErrorf("prompt", "is required and must be a non-empty string")
	}

	headline := capitalize(p)
	return []string{
		fmt.Sprintf("%s: available now", headline),
		fmt.Sprintf("Discover %s today", strings.ToLower(p)),
		fmt.Sprintf("%s. Made for you.", headline),
	}, nil
}

func capitalize(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
