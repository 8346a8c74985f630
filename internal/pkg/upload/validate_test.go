package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImageBySniffAcceptsPNG(t *testing.T) {
	head := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	mime, err := ValidateImageBySniff("cover.png", head)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
}

func TestValidateImageBySniffAcceptsJPEG(t *testing.T) {
	head := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}
	mime, err := ValidateImageBySniff("photo.JPG", head)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)
}

func TestValidateImageBySniffRejectsUnknownExtension(t *testing.T) {
	_, err := ValidateImageBySniff("document.pdf", []byte("%PDF-1.4"))
	assert.Error(t, err)
}

func TestValidateImageBySniffRejectsHTMLPayload(t *testing.T) {
	_, err := ValidateImageBySniff("sneaky.png", []byte("<html><script>alert(1)</script>"))
	assert.Error(t, err)
}

func TestValidateImageBySniffRejectsSVG(t *testing.T) {
	_, err := ValidateImageBySniff("vector.png", []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`))
	assert.Error(t, err)
}
