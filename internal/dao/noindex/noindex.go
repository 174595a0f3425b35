// Package noindex index doing nothing, used when no search is configured
package noindex

import (
	"github.com/willie68/GoTikaMeta/internal/dao/interfaces"
)

// NoIndex name of the index component
const NoIndex = "noindex"

var _ interfaces.Index = &Index{}

// Index the do nothing index
type Index struct {
}

// Init nothing to initialise
func (i *Index) Init() error {
	return nil
}

// Search never finds anything
func (i *Index) Search(_ string, _ func(hash string) bool) error {
	return nil
}

// Index ignores the metadata
func (i *Index) Index(_ string, _ map[string]any) error {
	return nil
}

// Delete nothing to delete
func (i *Index) Delete(_ string) error {
	return nil
}

// Close nothing to close
func (i *Index) Close() error {
	return nil
}
