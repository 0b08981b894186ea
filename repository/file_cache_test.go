package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCacheKeys(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	assert.Equal(t,
		"file_id:7:6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		cacheKeyID(idKey{UserID: 7, ID: id}))

	assert.Equal(t,
		"file_path:7:/reports/:q1.txt",
		cacheKeyPath(pathKey{UserID: 7, Path: "/reports/", Name: "q1.txt"}))
}
