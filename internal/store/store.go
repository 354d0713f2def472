package store

import (
	sq "github.com/Masterminds/squirrel"
)

// psql is the shared statement builder; Postgres wants dollar placeholders.
func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
