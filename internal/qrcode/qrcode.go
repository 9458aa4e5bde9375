package qrcode

import (
	"fmt"
	"net/url"

	qr "github.com/skip2/go-qrcode"
)

const size = 256

// JoinURL is the link a phone follows to take a seat in gameID.
func JoinURL(host, gameID string) string {
	return fmt.Sprintf("http://%s/lobby.html?game=%s", host, url.QueryEscape(gameID))
}

// Generate creates a QR code PNG image for the given URL.
func Generate(link string) ([]byte, error) {
	return qr.Encode(link, qr.Medium, size)
}
