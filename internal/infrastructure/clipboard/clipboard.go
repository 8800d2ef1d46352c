package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

var ErrUnsupported = errors.New("no system clipboard available")

// System writes to the operating system clipboard.
type System struct{}

func NewSystem() *System { return &System{} }

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Available reports whether a clipboard utility was found at startup.
func Available() bool {
	return !clipboard.Unsupported
}
