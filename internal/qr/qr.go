//go:build !noqr

package qr

import (
	"io"

	"github.com/mdp/qrterminal"
	"rsc.io/qr"
)

// Available reports whether this build carries the terminal code renderer.
// Builds tagged noqr leave it out and callers fall back to plain output.
func Available() bool { return true }

// Render writes s to w as a scannable half-block code. It fails only when the
// payload exceeds the encodable capacity.
func Render(w io.Writer, s string) error {
	// qrterminal swallows encoding errors, so probe capacity first.
	if _, err := qr.Encode(s, qr.M); err != nil {
		return err
	}

	config := qrterminal.Config{
		HalfBlocks:     true,
		Level:          qrterminal.M,
		Writer:         w,
		BlackChar:      qrterminal.BLACK_BLACK,
		WhiteChar:      qrterminal.WHITE_WHITE,
		BlackWhiteChar: qrterminal.BLACK_WHITE,
		WhiteBlackChar: qrterminal.WHITE_BLACK,
	}
	qrterminal.GenerateWithConfig(s, config)
	return nil
}
