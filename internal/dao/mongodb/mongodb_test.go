package mongodb

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hash = "da39a3ee5e6b4b0d3255bfef95601890afd80709"

// needs a running mongo, e.g. docker run -p 27017:27017 mongo
func initT(t *testing.T) *Index {
	if os.Getenv("TIKAMETA_MONGO_TEST") == "" {
		t.SkipNow()
	}
	idx, err := New(map[string]any{
		"hosts":    []string{"127.0.0.1:27017"},
		"database": "tikameta",
	})
	require.Nil(t, err)
	require.Nil(t, idx.Init())
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestNewWithoutHosts(t *testing.T) {
	ast := assert.New(t)

	_, err := New(map[string]any{"database": "tikameta"})
	ast.NotNil(err)
}

func TestToDoc(t *testing.T) {
	ast := assert.New(t)

	d := toDoc(hash, map[string]any{"id": int64(1), "title": "moodle", "resourcehash": hash})
	ast.Len(d, 2)
	ast.Equal(hashKey, d[0].Key)
	ast.Equal(hash, d[0].Value)
	ast.Equal("title", d[1].Key)
}

func TestIndexSearch(t *testing.T) {
	idx := initT(t)
	ast := assert.New(t)

	err := idx.Index(hash, map[string]any{"title": "moodle", "pagecount": int64(3)})
	ast.Nil(err)

	rets := make([]string, 0)
	err = idx.Search(`{"pagecount": {"$gt": 2}}`, func(h string) bool {
		rets = append(rets, h)
		return true
	})
	ast.Nil(err)
	ast.Equal([]string{hash}, rets)

	ast.Nil(idx.Delete(hash))
	rets = make([]string, 0)
	err = idx.Search(`{"title": "moodle"}`, func(h string) bool {
		rets = append(rets, h)
		return true
	})
	ast.Nil(err)
	ast.Empty(rets)

	ast.NotNil(idx.Search(`no json`, func(h string) bool { return true }))
}
