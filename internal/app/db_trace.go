package app

import (
	"regexp"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"go.opentelemetry.io/otel/attribute"
)

const maxTracedQueryLength = 512

var queryWhitespaceRegex = regexp.MustCompile(`\s+`)

// dbTraceOptions labels database spans with the store they belong to.
func dbTraceOptions(dbURL, serviceName string) []otelsql.Option {
	return []otelsql.Option{
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("peer.service", serviceName+"-db"),
		),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
}

// formatDBQueryForTrace collapses whitespace and caps the statement length.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
