// Package repository binds typed models to the embedded store. Each
// repository owns one collection, marshalling documents as JSON. List
// filters run in memory over the full collection, which matches the
// dataset sizes of a single-tenant installation.
package repository

import "strconv"

func key(id int64) string {
	return strconv.FormatInt(id, 10)
}
