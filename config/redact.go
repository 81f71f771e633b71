package config

import (
	"fmt"
	"net/url"

	"gopkg.in/yaml.v3"
)

const redacted = "[REDACTED]"

// RedactedYAML renders the effective configuration with credentials masked.
func (c *Config) RedactedYAML() ([]byte, error) {
	out := *c
	out.Database.URL = redactURL(c.Database.URL)
	if out.Redis.Password != "" {
		out.Redis.Password = redacted
	}

	data, err := yaml.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// redactURL masks the password of a connection URL. Unparseable values are
// masked entirely.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return redacted
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
