// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package patstat

import (
	"fmt"
	"strings"
)

// MaxInListSize bounds the number of ids bound into a single IN list.
// SQLite caps bind variables well below the PostgreSQL limit, so id
// sets are chunked and queried in runs.
const MaxInListSize = 500

// Placeholders returns a comma-separated run of positional parameters
// starting at start: Placeholders(3, 2) == "$3, $4". Builders use it
// to keep every placeholder number unique and ascending.
func Placeholders(start, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "$%d", start+i)
	}
	return b.String()
}

// ChunkIDs splits ids into runs of at most size. A nil or empty input
// yields no chunks.
func ChunkIDs(ids []int64, size int) [][]int64 {
	if size <= 0 {
		size = MaxInListSize
	}
	var chunks [][]int64
	for len(ids) > 0 {
		n := size
		if len(ids) < n {
			n = len(ids)
		}
		chunks = append(chunks, ids[:n])
		ids = ids[n:]
	}
	return chunks
}

// Int64Args widens ids for use as query arguments.
func Int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
