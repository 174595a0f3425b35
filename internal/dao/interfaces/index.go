package interfaces

// Index interface for indexer of the metadata records
type Index interface {
	Init() error                                                // initialise the indexer
	Search(query string, callback func(hash string) bool) error // searching metadata, the callback gets the resource hash of every hit
	Index(hash string, md map[string]any) error                 // index the metadata of a single resource
	Delete(hash string) error                                   // removing a resource from the index
	Close() error
}
