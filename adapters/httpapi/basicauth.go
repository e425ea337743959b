package httpapi

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-pdfgen/pdfgen"
)

// BasicAuthConfig configures the credential gate.
type BasicAuthConfig struct {
	Username string
	Password string
	// Exempt lists paths that bypass the gate (health check, favicon).
	Exempt []string
}

// BasicAuth returns a middleware that gates requests behind HTTP Basic
// credentials. Comparison is constant-time on both username and password.
// OPTIONS requests pass through so CORS preflights are never challenged.
func BasicAuth(cfg BasicAuthConfig) fiber.Handler {
	exempt := make(map[string]struct{}, len(cfg.Exempt))
	for _, path := range cfg.Exempt {
		exempt[path] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}
		if _, ok := exempt[c.Path()]; ok {
			return c.Next()
		}

		user, pass, ok := parseBasicAuth(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return challenge(c)
		}

		userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cfg.Username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(cfg.Password)) == 1
		if !userOK || !passOK {
			return challenge(c)
		}
		return c.Next()
	}
}

func parseBasicAuth(header string) (user, pass string, ok bool) {
	const prefix = "basic "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return "", "", false
	}
	user, pass, ok = strings.Cut(string(decoded), ":")
	return user, pass, ok
}

func challenge(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="Login Required"`)
	return WriteError(c, pdfgen.NewError(pdfgen.KindUnauthorized, "unauthorized", nil))
}
