// Package utils provides input validation for the URL shortener service.
package utils

import (
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxShortCodeLength is the longest short code accepted from clients.
const MaxShortCodeLength = 16

// shortCodeTag is equivalent to ^[0-9A-Za-z]{1,16}$; validator's alphanum is ASCII only.
const shortCodeTag = "required,alphanum,max=16"

var (
	// ErrInvalidURL is returned for anything other than an absolute http/https URL.
	ErrInvalidURL = errors.New("invalid URL: only absolute http/https URLs allowed")

	validate = validator.New()
)

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// NormalizeLongURL validates raw as an absolute http or https URL and returns
// its canonical form: scheme and host lower-cased, default port dropped and an
// empty path replaced by "/". Path, query and fragment keep their casing.
func NormalizeLongURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !u.IsAbs() || u.Opaque != "" {
		return "", ErrInvalidURL
	}

	u.Scheme = strings.ToLower(u.Scheme)
	defaultPort, ok := defaultPorts[u.Scheme]
	if !ok {
		return "", ErrInvalidURL
	}

	hostname := strings.ToLower(u.Hostname())
	if hostname == "" {
		return "", ErrInvalidURL
	}
	port := u.Port()
	if port == defaultPort {
		port = ""
	}
	if port != "" || strings.Contains(hostname, ":") {
		u.Host = net.JoinHostPort(hostname, port)
		if port == "" {
			u.Host = strings.TrimSuffix(u.Host, ":")
		}
	} else {
		u.Host = hostname
	}

	if u.Path == "" && u.RawPath == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

// IsValidShortCode reports whether code is 1-16 characters of [0-9A-Za-z].
func IsValidShortCode(code string) bool {
	return validate.Var(code, shortCodeTag) == nil
}
