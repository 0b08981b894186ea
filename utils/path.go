package utils

import "strings"

// The virtual namespace stores a file as a (path, name) pair. Path is the
// canonical directory: it always starts and ends with "/". A raw path hint
// that does not end with "/" carries the desired file name as its last
// segment; a trailing slash means "into this folder, keep the uploaded
// file's own name".

// SetFilePath normalizes a raw path hint into the canonical directory.
func SetFilePath(raw *string) string {
	if raw == nil {
		return "/"
	}

	path := *raw
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	if strings.HasSuffix(path, "/") {
		return path
	}

	if i := strings.LastIndex(path, "/"); i != -1 {
		return path[:i+1]
	}

	return "/"
}

// SetFileName resolves the stored file name: the last segment of the raw
// path hint when it names a file, otherwise the uploaded file's own name.
func SetFileName(raw *string, uploadedName string) string {
	if raw == nil || strings.HasSuffix(*raw, "/") {
		return uploadedName
	}

	path := *raw
	return path[strings.LastIndex(path, "/")+1:]
}

// SplitPathAndName splits a combined full path into its canonical directory
// and leaf name.
func SplitPathAndName(fullPath string) (string, string) {
	if !strings.HasPrefix(fullPath, "/") {
		fullPath = "/" + fullPath
	}

	i := strings.LastIndex(fullPath, "/")
	return fullPath[:i+1], fullPath[i+1:]
}
