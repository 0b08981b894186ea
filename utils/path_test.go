package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestSetFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  *string
		want string
	}{
		{"nil path", nil, "/"},
		{"root", strptr("/"), "/"},
		{"folder with trailing slash", strptr("/a/b/"), "/a/b/"},
		{"path naming a file", strptr("/a/b"), "/a/"},
		{"nested path naming a file", strptr("/reports/q1.txt"), "/reports/"},
		{"missing leading slash", strptr("a/b/"), "/a/b/"},
		{"bare file name", strptr("c.txt"), "/"},
		{"empty string", strptr(""), "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SetFilePath(tt.raw))
		})
	}
}

func TestSetFilePathAlwaysEndsWithSlash(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"/a", "/a/b", "a/b/c.txt", "x", "/deep/er/path/file.bin"} {
		got := SetFilePath(&raw)
		assert.Equal(t, "/", got[len(got)-1:], "SetFilePath(%q) = %q", raw, got)
	}
}

func TestSetFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      *string
		uploaded string
		want     string
	}{
		{"nil path keeps uploaded name", nil, "doc.txt", "doc.txt"},
		{"trailing slash keeps uploaded name", strptr("/reports/"), "doc.txt", "doc.txt"},
		{"path names the file", strptr("/a/b"), "u.txt", "b"},
		{"nested path names the file", strptr("/reports/q1.txt"), "doc.txt", "q1.txt"},
		{"bare name without slash", strptr("q1.txt"), "doc.txt", "q1.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SetFileName(tt.raw, tt.uploaded))
		})
	}
}

func TestSplitPathAndName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		full     string
		wantPath string
		wantName string
	}{
		{"/a/b/c.txt", "/a/b/", "c.txt"},
		{"c.txt", "/", "c.txt"},
		{"/doc.txt", "/", "doc.txt"},
		{"a/b", "/a/", "b"},
	}

	for _, tt := range tests {
		path, name := SplitPathAndName(tt.full)
		assert.Equal(t, tt.wantPath, path, "path of %q", tt.full)
		assert.Equal(t, tt.wantName, name, "name of %q", tt.full)
	}
}
