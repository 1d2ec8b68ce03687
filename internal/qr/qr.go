package qr

import (
	"encoding/base64"
	"encoding/json"

	qrcode "github.com/skip2/go-qrcode"
)

// DataURLPrefix starts every rendered payload. Callers check it rather than
// decoding the image.
const DataURLPrefix = "data:image/png;base64,"

const imageSize = 256

// SessionPayload is the login QR content scanned by the second device.
type SessionPayload struct {
	SecretKey string `json:"secretKey"`
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

// EncodeSession renders the session triple as a scannable PNG data URL.
func EncodeSession(payload SessionPayload) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return encode(string(data))
}

// EncodeToken renders a bare handshake token as a scannable PNG data URL.
func EncodeToken(token string) (string, error) {
	return encode(token)
}

func encode(content string) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, imageSize)
	if err != nil {
		return "", err
	}
	return DataURLPrefix + base64.StdEncoding.EncodeToString(png), nil
}
