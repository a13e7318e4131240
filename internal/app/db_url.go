package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL appends disable_prepared_binary_result=yes to the DSN when
// the config asks for it. The players table is all text and small numerics,
// and some poolers mishandle binary result mode for prepared statements.
// An explicit value already present in the URL wins.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil || u == nil {
		return raw
	}

	q := u.Query()
	if q.Get("disable_prepared_binary_result") != "" {
		return raw
	}
	q.Set("disable_prepared_binary_result", "yes")
	u.RawQuery = q.Encode()

	return u.String()
}

// dbNameFromURL extracts the database name for the otelsql db.name span
// attribute. Handles both URL DSNs (postgres://.../football_db) and keyword
// DSNs (dbname=football_db).
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if u, err := url.Parse(trimmed); err == nil && u != nil && u.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(u.Path, "/")); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		key, value, ok := strings.Cut(token, "=")
		if !ok || key != "dbname" {
			continue
		}
		if name := strings.Trim(strings.TrimSpace(value), `"'`); name != "" {
			return name
		}
	}

	return ""
}
