package app

import (
	"net/url"
	"strings"
)

const (
	binaryResultParam    = "disable_prepared_binary_result"
	maxTracedQueryLength = 512
)

// warehouseDSN turns off binary results for prepared statements unless the
// caller already chose a value. Poolers in transaction mode need this.
func warehouseDSN(raw string, disableBinaryResult bool) string {
	if !disableBinaryResult {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return raw
	}
	params := u.Query()
	if params.Has(binaryResultParam) {
		return raw
	}
	params.Set(binaryResultParam, "yes")
	u.RawQuery = params.Encode()
	return u.String()
}

// databaseName reads the database out of either a URL or a key=value DSN.
func databaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" {
		if name := strings.Trim(u.Path, "/ "); name != "" {
			return name
		}
	}
	for _, field := range strings.Fields(dsn) {
		if value, ok := strings.CutPrefix(field, "dbname="); ok {
			if name := strings.Trim(value, `"'`); name != "" {
				return name
			}
		}
	}
	return ""
}

// traceQuery collapses whitespace so span attributes stay on one line.
func traceQuery(query string) string {
	flat := strings.Join(strings.Fields(query), " ")
	if len(flat) > maxTracedQueryLength {
		return flat[:maxTracedQueryLength] + "..."
	}
	return flat
}
