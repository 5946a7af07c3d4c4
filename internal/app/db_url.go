package app

import (
	"net/url"
	"strings"
)

const (
	defaultDBName         = "fpl_optimizer"
	preparedBinaryFlagKey = "disable_prepared_binary_result"
)

// postgresDSN returns the connection string for the prediction and schedule
// store, adding the prepared binary result flag when requested.
func postgresDSN(raw string, disablePreparedBinary bool) string {
	raw = strings.TrimSpace(raw)
	if !disablePreparedBinary {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get(preparedBinaryFlagKey) == "" {
		query.Set(preparedBinaryFlagKey, "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

// dbNameFromURL reads the database name from a URL or key=value DSN,
// falling back to the service's default database.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
		return defaultDBName
	}

	for _, token := range strings.Fields(trimmed) {
		name, ok := strings.CutPrefix(token, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(strings.TrimSpace(name), `"'`); name != "" {
			return name
		}
	}
	return defaultDBName
}
