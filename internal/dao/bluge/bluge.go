// Package bluge using a local bluge full text index for searching metadata records
package bluge

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/blugelabs/bluge"
	querystr "github.com/blugelabs/query_string"
	"github.com/willie68/GoTikaMeta/internal/dao/interfaces"
	"github.com/willie68/GoTikaMeta/internal/logging"
)

// BlugeIndex name of the index component
const BlugeIndex = "bluge"

// maximum hits of one search
const maxHits = 1000

var (
	_   interfaces.Index = &Index{}
	log                  = logging.New().WithName("bluge")
)

// Index the bluge index
type Index struct {
	Rootpath string `json:"rootpath"`
	config   bluge.Config
	wsync    sync.Mutex
}

// New creates a new index from the storage properties
func New(p map[string]any) (*Index, error) {
	jsonStr, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var idx Index
	if err := json.Unmarshal(jsonStr, &idx); err != nil {
		return nil, err
	}
	return &idx, nil
}

// Init creating the index folder
func (m *Index) Init() error {
	if m.Rootpath == "" {
		return errors.New("no root path for the bluge index")
	}
	p := filepath.Join(m.Rootpath, "_idx")
	if err := os.MkdirAll(p, os.ModePerm); err != nil {
		return err
	}
	m.config = bluge.DefaultConfig(p)
	return nil
}

// Search searching with a query string like `title:moodle AND pagecount:>2`
func (m *Index) Search(query string, callback func(hash string) bool) error {
	bq, err := querystr.ParseQueryString(query, querystr.DefaultOptions())
	if err != nil {
		return err
	}
	reader, err := bluge.OpenReader(m.config)
	if err != nil {
		return err
	}
	defer reader.Close()
	request := bluge.NewTopNSearch(maxHits, bq)
	dmi, err := reader.Search(context.Background(), request)
	if err != nil {
		return err
	}
	match, err := dmi.Next()
	for err == nil && match != nil {
		next := true
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				next = callback(string(value))
			}
			return true
		})
		if err != nil || !next {
			return err
		}
		match, err = dmi.Next()
	}
	return err
}

// Index indexing the metadata of one resource
func (m *Index) Index(hash string, md map[string]any) error {
	doc := bluge.NewDocument(hash)
	for k, i := range md {
		switch v := i.(type) {
		case int:
			doc.AddField(bluge.NewNumericField(k, float64(v)).StoreValue())
		case int64:
			doc.AddField(bluge.NewNumericField(k, float64(v)).StoreValue())
		case float64:
			doc.AddField(bluge.NewNumericField(k, v).StoreValue())
		case string:
			doc.AddField(bluge.NewTextField(k, v).StoreValue())
		default:
			log.Debugf("field %s of type %T not indexed", k, i)
		}
	}

	m.wsync.Lock()
	defer m.wsync.Unlock()
	writer, err := bluge.OpenWriter(m.config)
	if err != nil {
		return err
	}
	defer writer.Close()
	return writer.Update(doc.ID(), doc)
}

// Delete removes the document of the resource
func (m *Index) Delete(hash string) error {
	m.wsync.Lock()
	defer m.wsync.Unlock()
	writer, err := bluge.OpenWriter(m.config)
	if err != nil {
		return err
	}
	defer writer.Close()
	return writer.Delete(bluge.Identifier(hash))
}

// Close nothing to do, readers and writers are opened per call
func (m *Index) Close() error {
	return nil
}
