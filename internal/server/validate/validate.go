// Package validate rejects malformed input before it reaches the auth
// facade. Both transports share these checks so an invalid request never
// touches the store.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MinPasswordLen is the password policy floor.
const MinPasswordLen = 6

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func Email(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("not valid email")
	}
	return nil
}

func Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("empty name")
	}
	return nil
}

func Password(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	return nil
}

func Token(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	return nil
}
