package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeByExtension(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"index.html", "text/html"},
		{"style.css", "text/css"},
		{"app.js", "application/javascript"},
		{"data.json", "application/json"},
		{"readme.md", "text/markdown"},
		{"notes.txt", "text/plain"},
		{"logo.png", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"photo.JPEG", "image/jpeg"},
		{"anim.gif", "image/gif"},
		{"icon.svg", "image/svg+xml"},
	}
	for _, tc := range cases {
		mt, ok := TypeByExtension(tc.name)
		assert.True(t, ok, tc.name)
		assert.Equal(t, tc.want, mt, tc.name)
	}

	_, ok := TypeByExtension("archive.xyz")
	assert.False(t, ok)
	_, ok = TypeByExtension("noext")
	assert.False(t, ok)
}

func TestBinaryByExtension(t *testing.T) {
	assert.True(t, BinaryByExtension("logo.png"))
	assert.True(t, BinaryByExtension("icon.svg"))
	assert.False(t, BinaryByExtension("notes.txt"))
	assert.False(t, BinaryByExtension("data.json"))
	// Unknown extensions default to the text read path
	assert.False(t, BinaryByExtension("archive.xyz"))
}
