package kindling

import (
	"fmt"
	"strings"
)

const (
	// idSeparator joins the identity fields; the ASCII unit separator is
	// vanishingly unlikely in natural text.
	idSeparator = "\x1f"

	// idContentRunes bounds how much of the content excerpt feeds the
	// hash, so edits past that point do not change a card's identity.
	idContentRunes = 100
)

// DeriveID produces a stable, fixed-width identifier for a card from its
// title, author, and content excerpt. The same three inputs always yield
// the same 8-character hex string, across runs and platforms; collisions
// are an accepted limitation (the hash is not cryptographic).
//
// Returns ErrEmptyField when any input is empty after trimming: identity
// is undefined without all three.
func DeriveID(title, author, content string) (string, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	content = strings.TrimSpace(content)

	switch {
	case title == "":
		return "", fmt.Errorf("%w: title", ErrEmptyField)
	case author == "":
		return "", fmt.Errorf("%w: author", ErrEmptyField)
	case content == "":
		return "", fmt.Errorf("%w: content", ErrEmptyField)
	}

	if runes := []rune(content); len(runes) > idContentRunes {
		content = string(runes[:idContentRunes])
	}

	key := title + idSeparator + author + idSeparator + content

	// Multiply-and-add rolling hash with 32-bit wraparound.
	var h uint32
	for _, r := range key {
		h = h*31 + uint32(r)
	}
	return fmt.Sprintf("%08x", h), nil
}
