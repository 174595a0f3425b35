package fastcache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/willie68/GoTikaMeta/internal/metadata"
	"github.com/willie68/GoTikaMeta/pkg/model"
)

func newCache(t *testing.T, count int) *FastCache {
	c := &FastCache{MaxCount: count}
	require.Nil(t, c.Init())
	t.Cleanup(func() { c.Close() })
	return c
}

func record(hash string) *metadata.Record {
	return metadata.FromRaw(hash, model.RawMetadata{
		"Content-Type":  "application/pdf",
		"dc:title":      "Title " + hash,
		"xmpTPg:NPages": "3",
	})
}

func TestPutGet(t *testing.T) {
	ast := assert.New(t)
	c := newCache(t, 10)

	_, ok := c.Get("unknown")
	ast.False(ok)

	c.Put(record("abc"))
	r, ok := c.Get("abc")
	ast.True(ok)
	ast.Equal("Title abc", r.Title)
	pc, _ := r.Int("pagecount")
	ast.Equal(int64(3), pc)

	// the cache holds copies
	r.Set("title", "changed")
	r, _ = c.Get("abc")
	ast.Equal("Title abc", r.Title)

	c.Delete("abc")
	_, ok = c.Get("abc")
	ast.False(ok)
	ast.Equal(0, c.Size())
}

func TestReplace(t *testing.T) {
	ast := assert.New(t)
	c := newCache(t, 10)

	c.Put(record("abc"))
	r := record("abc")
	r.Set("title", "new title")
	c.Put(r)

	ast.Equal(1, c.Size())
	r, ok := c.Get("abc")
	ast.True(ok)
	ast.Equal("new title", r.Title)
}

func TestEviction(t *testing.T) {
	ast := assert.New(t)
	c := newCache(t, 5)

	for x := 0; x < 10; x++ {
		c.Put(record(fmt.Sprintf("hash%02d", x)))
	}
	ast.Equal(5, c.Size())
	c.rebuildBloomFilter()

	_, ok := c.Get("hash09")
	ast.True(ok)
}

func TestLRUList(t *testing.T) {
	ast := assert.New(t)

	l := LRUList{MaxCount: 2}
	l.Init()
	l.Add(LRUEntry{Hash: "c"})
	l.Add(LRUEntry{Hash: "a"})
	l.Add(LRUEntry{Hash: "b"})
	ast.Equal([]string{"a", "b", "c"}, l.GetFullIDList())
	ast.NotEqual("", l.HandleContrains())

	ast.Equal("b", l.Delete("b"))
	ast.Equal("", l.Delete("b"))
	ast.Equal([]string{"a", "c"}, l.GetFullIDList())
	ast.Equal("", l.HandleContrains())
}
