// Package column implements the column-pivot step of the compressor
// pipeline: turning a heterogeneous batch of records into a rectangular,
// sparsity-aware set of named columns. Type profiling of those columns is
// done separately by the profile package.
package column

import (
	"sort"

	"github.com/basiliskin/sajc/internal/pool"
	"github.com/basiliskin/sajc/value"
)

// Pivot turns a batch of records into columns in four steps:
//
//  1. collect the union of top-level keys across all records, sorted;
//  2. for each record, for each sorted key, assign MISSING if the key is
//     absent, else keep the value (including null); then flatten;
//  3. recompute the union of flattened dotted keys across all records,
//     backfilling MISSING for any key missing in any row;
//  4. pivot into columns.
//
// The returned names slice is sorted and fixes column order on the wire;
// columns[i] has exactly len(records) entries, one per row, in row order.
func Pivot(records []value.Record) (names []string, columns [][]value.Value) {
	topKeys := unionSortedKeys(records, func(r value.Record) []string {
		keys := make([]string, 0, len(r))
		for k := range r {
			keys = append(keys, k)
		}

		return keys
	})

	sparse := make([]value.Record, len(records))
	for i, r := range records {
		row := make(value.Record, len(topKeys))
		for _, k := range topKeys {
			if v, ok := r[k]; ok {
				row[k] = v
			} else {
				row[k] = value.Missing()
			}
		}

		sparse[i] = row
	}

	flat := make([]value.Record, len(sparse))
	for i, r := range sparse {
		flat[i] = value.Flatten(r)
	}

	flatKeys := unionSortedKeys(flat, func(r value.Record) []string {
		keys := make([]string, 0, len(r))
		for k := range r {
			keys = append(keys, k)
		}

		return keys
	})

	columns = make([][]value.Value, len(flatKeys))
	for ci, key := range flatKeys {
		col := make([]value.Value, len(flat))
		for ri, r := range flat {
			if v, ok := r[key]; ok {
				col[ri] = v
			} else {
				col[ri] = value.Missing()
			}
		}

		columns[ci] = col
	}

	return flatKeys, columns
}

// unionSortedKeys collects the deduplicated, sorted union of keys produced
// by extract across all records.
func unionSortedKeys(records []value.Record, extract func(value.Record) []string) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		for _, k := range extract(r) {
			seen[k] = struct{}{}
		}
	}

	scratch, cleanup := pool.GetStringSlice(len(seen))
	defer cleanup()

	keys := scratch[:0]
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, len(keys))
	copy(out, keys)

	return out
}

// Assemble is the inverse of Pivot: given the column names and their
// per-row values, it reassembles one flat Record per row index in row
// order, then returns the inverse-flattened (nested) Record for each row.
func Assemble(names []string, columns [][]value.Value, rowCount int) []value.Record {
	out := make([]value.Record, rowCount)

	for row := 0; row < rowCount; row++ {
		flat := make(value.Record, len(names))
		for ci, name := range names {
			flat[name] = columns[ci][row]
		}

		out[row] = value.Unflatten(flat)
	}

	return out
}
