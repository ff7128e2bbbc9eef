// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic used by `odin config` and the MCP server, where config is
// addressed by dotted keys (e.g., "store.verify_pdf").
//
// Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/false".

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"store.dir", "store.verify_pdf",
		"limits.max_source",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "store.dir":
		return c.Store.Dir, nil
	case "store.verify_pdf":
		return strconv.FormatBool(c.VerifyPDF()), nil
	case "limits.max_source":
		return strconv.FormatInt(c.MaxSource(), 10), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "store.dir":
		c.Store.Dir = strings.TrimSpace(value)
	case "store.verify_pdf":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: store.verify_pdf must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Store.VerifyPDF = &b
	case "limits.max_source":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n < MinMaxSource || n > MaxMaxSource {
			return fmt.Errorf("%w: limits.max_source must be between %d and %d",
				ErrInvalidValue, MinMaxSource, int64(MaxMaxSource))
		}
		c.Limits.MaxSource = &n
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"author.name":       c.Author.Name,
		"author.email":      c.Author.Email,
		"store.dir":         c.Store.Dir,
		"store.verify_pdf":  strconv.FormatBool(c.VerifyPDF()),
		"limits.max_source": strconv.FormatInt(c.MaxSource(), 10),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "store.dir":
		return c.Store.Dir != ""
	case "store.verify_pdf":
		return c.Store.VerifyPDF != nil
	case "limits.max_source":
		return c.Limits.MaxSource != nil
	default:
		return false
	}
}
