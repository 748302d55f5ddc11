// Package greeting is the demo service behind the Greeting facade.
package greeting

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Key is the container abstract and facade accessor of the service.
const Key = "greeting"

// DefaultFormat is used when NewService gets an empty format.
const DefaultFormat = "Hello, %s!"

// Service builds greetings.
type Service struct {
	format string
}

// NewService returns a Service using format, a fmt string with one %s verb.
func NewService(format string) *Service {
	if format == "" {
		format = DefaultFormat
	}
	return &Service{format: format}
}

// Greet greets name with its first letter upper-cased.
func (s *Service) Greet(name string) string {
	return fmt.Sprintf(s.format, ucfirst(name))
}

func ucfirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
