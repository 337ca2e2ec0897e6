package shortid

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	Alphabet      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz_-"
	DefaultLength = 9
)

// Generator issues registration codes.
type Generator func() (string, error)

// New 回傳固定長度的 nanoid 產生器；length <= 0 時使用 DefaultLength
func New(length int) Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return func() (string, error) {
		id, err := gonanoid.Generate(Alphabet, length)
		if err != nil {
			return "", fmt.Errorf("generate short id: %w", err)
		}
		return id, nil
	}
}
