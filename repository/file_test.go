package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-drive/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunRepo builds a FileRepository over a gorm session that renders SQL
// without executing it, so the generated clauses are assertable without a
// database.
func newDryRunRepo(t *testing.T) *FileRepository {
	t.Helper()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		DryRun:         true,
		TranslateError: true,
	})
	require.NoError(t, err)

	return NewFileRepository(gdb)
}

func renderSearch(t *testing.T, repo *FileRepository, userID uint, opts SearchOptions) (string, []interface{}) {
	t.Helper()

	var files []entity.File
	tx := repo.searchQuery(userID, opts).Find(&files)
	require.NoError(t, tx.Error)
	return tx.Statement.SQL.String(), tx.Statement.Vars
}

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestSearchQuery_OwnerOnly(t *testing.T) {
	repo := newDryRunRepo(t)

	sql, vars := renderSearch(t, repo, 7, SearchOptions{})

	assert.Contains(t, sql, `FROM "files"`)
	assert.Contains(t, sql, "user_id = $1")
	assert.NotContains(t, sql, "ORDER BY")
	assert.NotContains(t, sql, "LIMIT")
	assert.Equal(t, []interface{}{uint(7)}, vars)
}

func TestSearchQuery_ExtensionMatchesNameSuffix(t *testing.T) {
	repo := newDryRunRepo(t)

	sql, vars := renderSearch(t, repo, 7, SearchOptions{Extension: strp("txt")})

	assert.Contains(t, sql, "name LIKE $2")
	assert.Equal(t, []interface{}{uint(7), "%txt"}, vars)
}

func TestSearchQuery_PatternWildcardsPassThrough(t *testing.T) {
	repo := newDryRunRepo(t)

	sql, vars := renderSearch(t, repo, 7, SearchOptions{Query: strp("%rep_rt%")})

	assert.Contains(t, sql, "name LIKE $2 OR path LIKE $3")
	assert.Equal(t, []interface{}{uint(7), "%rep_rt%", "%rep_rt%"}, vars)
}

func TestSearchQuery_FiltersCombineWithAnd(t *testing.T) {
	repo := newDryRunRepo(t)

	sql, vars := renderSearch(t, repo, 7, SearchOptions{
		Path:      strp("/reports/"),
		Extension: strp("txt"),
		Query:     strp("%q1%"),
		OrderBy:   strp("name"),
		Limit:     intp(5),
	})

	assert.Contains(t, sql, "user_id = $1")
	assert.Contains(t, sql, "path = $2")
	assert.Contains(t, sql, "name LIKE $3")
	assert.Contains(t, sql, "name LIKE $4 OR path LIKE $5")
	assert.Contains(t, sql, "ORDER BY name")
	assert.Contains(t, sql, "LIMIT $6")
	assert.Equal(t, []interface{}{uint(7), "/reports/", "%txt", "%q1%", "%q1%", 5}, vars)
}

func TestSearchQuery_UnknownOrderColumnIgnored(t *testing.T) {
	repo := newDryRunRepo(t)

	sql, _ := renderSearch(t, repo, 7, SearchOptions{OrderBy: strp("name; DROP TABLE files")})

	assert.NotContains(t, sql, "ORDER BY")
	assert.NotContains(t, sql, "DROP")
}

func TestSearchQuery_OrderColumnWhitelist(t *testing.T) {
	repo := newDryRunRepo(t)

	for _, col := range []string{"id", "name", "path", "size", "created_at"} {
		sql, _ := renderSearch(t, repo, 7, SearchOptions{OrderBy: strp(col)})
		assert.Contains(t, sql, "ORDER BY "+col)
	}
}
