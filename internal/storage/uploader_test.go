package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedFile(t *testing.T) {
	allowed := []string{"photo.png", "photo.jpg", "photo.JPEG", "anim.gif", "modern.webp", "a.b.c.PNG"}
	for _, name := range allowed {
		assert.True(t, AllowedFile(name), name)
	}

	rejected := []string{"script.php", "doc.pdf", "archive.zip", "noext", "", "image.png.exe", "image.svg"}
	for _, name := range rejected {
		assert.False(t, AllowedFile(name), name)
	}
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "my_photo__1_.png", SanitizeFilename("my photo (1).png"))
	assert.Equal(t, "passwd", SanitizeFilename("../../etc/passwd"))
	assert.Equal(t, "upload", SanitizeFilename(""))
	assert.Equal(t, "plain.jpg", SanitizeFilename("plain.jpg"))
}
