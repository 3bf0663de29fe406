package port

// SearchIndex is the full text index of a database.
type SearchIndex interface {
	Index(id string, data interface{}) error
	Delete(id string) error
	Close() error
}
