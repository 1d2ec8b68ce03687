package qr

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSessionProducesDataURL(t *testing.T) {
	dataURL, err := EncodeSession(SessionPayload{
		SecretKey: "s3cr3tK3y0",
		SessionID: "sessionId0",
		UserID:    "0c7f9f6e-7b5a-4f0e-9b84-2f1f4c8a9d11",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(dataURL, DataURLPrefix))

	raw := strings.TrimPrefix(dataURL, DataURLPrefix)
	png, err := base64.StdEncoding.DecodeString(raw)
	require.NoError(t, err)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestEncodeTokenProducesDataURL(t *testing.T) {
	dataURL, err := EncodeToken("9f86d081884c7d659a2feaa0c55ad015")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, DataURLPrefix))
}

func TestEncodeEmptyContentFails(t *testing.T) {
	_, err := EncodeToken("")
	assert.Error(t, err)
}
