//go:build noqr

package qr

import (
	"errors"
	"io"
)

func Available() bool { return false }

func Render(io.Writer, string) error {
	return errors.New("terminal code renderer not built in")
}
