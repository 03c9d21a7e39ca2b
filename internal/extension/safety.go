package extension

import (
	"fmt"
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"
)

// enableStatement builds the idempotent enable statement for an extension
// and verifies it with the real PostgreSQL parser before it is executed.
// Extension names cannot be bound as query parameters, so the identifier
// is quoted into the statement and the result is checked to still be a
// single CREATE EXTENSION IF NOT EXISTS for exactly that name.
func enableStatement(name string) (string, error) {
	sql := "CREATE EXTENSION IF NOT EXISTS " + quoteIdentifier(name)

	tree, err := pg_query.Parse(sql)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidExtensionName, err)
	}

	if len(tree.Stmts) != 1 {
		return "", fmt.Errorf("%w: expected 1 statement, got %d", ErrInvalidExtensionName, len(tree.Stmts))
	}

	node, ok := tree.Stmts[0].Stmt.Node.(*pg_query.Node_CreateExtensionStmt)
	if !ok {
		return "", fmt.Errorf("%w: not a CREATE EXTENSION statement", ErrInvalidExtensionName)
	}

	stmt := node.CreateExtensionStmt
	if stmt == nil || !stmt.IfNotExists || stmt.Extname != name {
		return "", fmt.Errorf("%w: statement does not match name %q", ErrInvalidExtensionName, name)
	}

	return sql, nil
}

// quoteIdentifier double-quotes a PostgreSQL identifier, doubling any
// embedded quote characters.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
