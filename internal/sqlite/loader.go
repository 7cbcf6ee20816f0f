// This file implements JSONL loading on attach.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// jsonlTableMapping maps JSONL files to their SQLite tables and column lists.
// Attributes reference categories, so categories load first.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []string
}{
	{categoriesJSONL, "categories", []string{"category_id", "name"}},
	{attributesJSONL, "attributes", []string{"attribute_id", "category_id", "name", "data_type", "dictionary_id"}},
	{relationsJSONL, "relation_configurations", []string{"relation_id", "name", "direction"}},
}

// loadStats reports the outcome of loading one JSONL file.
type loadStats struct {
	file    string
	loaded  int
	skipped int
}

// loadAllJSONL reads each JSONL file from dataDir and inserts the records into
// the corresponding tables in one transaction: either every file loads or the
// database stays empty. Malformed lines and records that violate a constraint
// are skipped and counted. Unknown fields are ignored.
func loadAllJSONL(db *sql.DB, dataDir string) ([]loadStats, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, errors.Wrap(err, "beginning load transaction")
	}
	defer tx.Rollback()

	stats := make([]loadStats, 0, len(jsonlTableMapping))
	for _, mapping := range jsonlTableMapping {
		records, malformed, err := readJSONL(filepath.Join(dataDir, mapping.file))
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", mapping.file)
		}

		st := loadStats{file: mapping.file, skipped: malformed}
		if len(records) > 0 {
			loaded, rejected, err := insertRecords(tx, mapping.table, mapping.columns, records)
			if err != nil {
				return nil, errors.Wrapf(err, "loading %s into %s", mapping.file, mapping.table)
			}
			st.loaded = loaded
			st.skipped += rejected
		}
		stats = append(stats, st)
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "committing load transaction")
	}
	return stats, nil
}

// insertRecords inserts parsed JSONL records into a table. Only the mapped
// columns are extracted; a missing field inserts NULL. Returns the number of
// rows inserted and the number of records rejected.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) (int, int, error) {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "preparing insert for %s", table)
	}
	defer stmt.Close()

	loaded, rejected := 0, 0
	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			// Valid JSON that is not an object.
			rejected++
			continue
		}

		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = columnValue(obj[col])
		}

		if _, err := stmt.Exec(args...); err != nil {
			rejected++
			continue
		}
		loaded++
	}
	return loaded, rejected, nil
}

// columnValue converts a decoded JSON field into a column argument. Every
// reference column is text, so only strings are accepted; anything else
// becomes NULL and is left to the table constraints.
func columnValue(v any) any {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return s
}
