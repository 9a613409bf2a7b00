// Package urlgen generates random short codes for the URL shortener service.
package urlgen

import (
	"github.com/jaevor/go-nanoid"
)

// Alphabet is the set of characters generated codes are drawn from.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// CodeLength is the length of every generated code.
const CodeLength = 7

// Generator returns a fresh candidate code on each call. It does not check
// whether the code is already taken.
type Generator func() string

// New returns a Generator drawing CodeLength characters uniformly and
// independently from Alphabet using a crypto-seeded source.
func New() (Generator, error) {
	gen, err := nanoid.CustomASCII(Alphabet, CodeLength)
	if err != nil {
		return nil, err
	}
	return Generator(gen), nil
}

// Skipping wraps generate so that codes for which reserved returns true are
// drawn again instead of being returned.
func Skipping(generate Generator, reserved func(string) bool) Generator {
	return func() string {
		for {
			code := generate()
			if !reserved(code) {
				return code
			}
		}
	}
}
