package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/doctrack/internal/common"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// bcrypt ignores input past 72 bytes
const maxPasswordBytes = 72

var noPathSeparators = regexp.MustCompile(`^[^/\\]+$`)

type credentials struct {
	Email    string
	Password string
}

func (c credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&c.Password, validation.Required, validation.By(maxBytes(maxPasswordBytes))),
	)
}

func maxBytes(n int) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if len(s) > n {
			return fmt.Errorf("must be at most %d bytes", n)
		}
		return nil
	}
}

func notDotPath(value interface{}) error {
	if s, _ := value.(string); s == "." || s == ".." {
		return errors.New("must not be a relative path")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if err := (credentials{Email: email, Password: password}).Validate(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}

func validateFilename(name string) error {
	err := validation.Validate(name,
		validation.Required,
		validation.Length(1, 255),
		validation.Match(noPathSeparators),
		validation.By(notDotPath),
	)
	if err != nil {
		return fmt.Errorf("%w: filename %v", common.ErrorValidation, err)
	}
	return nil
}
