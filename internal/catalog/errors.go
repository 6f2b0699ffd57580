package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrCatalogUnreachable wraps transport failures talking to the catalog
	ErrCatalogUnreachable = errors.New("catalog unreachable")

	// ErrCatalogParse is returned when the catalog body is not the expected JSON
	ErrCatalogParse = errors.New("malformed catalog response")
)

// StatusError reports a non-success HTTP status from the catalog
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog returned status %d", e.Status)
}
