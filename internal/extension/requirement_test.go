package extension_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aqasim81/ragdb-bootstrap/internal/extension"
)

func TestRequirementsFromNames_preservesOrder(t *testing.T) {
	t.Parallel()

	reqs := extension.RequirementsFromNames([]string{"btree_gin", "pg_trgm"})

	assert.Equal(t, []extension.Requirement{
		{Name: "btree_gin"},
		{Name: "pg_trgm"},
	}, reqs)
}

func TestRequirementsFromNames_empty_returnsEmptySlice(t *testing.T) {
	t.Parallel()

	reqs := extension.RequirementsFromNames(nil)

	assert.Empty(t, reqs)
}
