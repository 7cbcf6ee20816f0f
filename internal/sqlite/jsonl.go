// This file provides JSONL read/write helpers with atomic persistence.
package sqlite

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// Reference data file names inside the catalog data directory.
const (
	categoriesJSONL = "categories.jsonl"
	attributesJSONL = "attributes.jsonl"
	relationsJSONL  = "relation_configurations.jsonl"
)

// jsonlFiles lists every reference data file in load order.
var jsonlFiles = []string{categoriesJSONL, attributesJSONL, relationsJSONL}

// readJSONL reads a JSONL file and returns each non-empty, parseable line as
// a json.RawMessage, along with the number of malformed lines skipped.
func readJSONL(path string) ([]json.RawMessage, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	var records []json.RawMessage
	skipped := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			skipped++
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, errors.Wrapf(err, "scanning %s", path)
	}
	return records, skipped, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonl-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpName := tmp.Name()

	fail := func(err error, msg string) error {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, msg)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail(err, "writing record")
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail(err, "writing newline")
		}
	}
	if err := w.Flush(); err != nil {
		return fail(err, "flushing buffer")
	}
	if err := tmp.Sync(); err != nil {
		return fail(err, "syncing temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "renaming temp file")
	}
	return nil
}

// initJSONLFiles creates any missing reference data file as an empty file.
// Existing files are left untouched.
func initJSONLFiles(dataDir string) error {
	for _, name := range jsonlFiles {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return errors.Wrapf(err, "checking %s", name)
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			return errors.Wrapf(err, "creating %s", name)
		}
	}
	return nil
}

// marshalRecords encodes each record as one JSON line.
func marshalRecords[T any](records []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(records))
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return nil, errors.Wrap(err, "encoding record")
		}
		out = append(out, b)
	}
	return out, nil
}

// WriteReferenceData replaces the reference data files in dataDir with the
// given records, creating dataDir if needed. Each file is written atomically.
// The catalog picks up the new data on the next Attach.
func WriteReferenceData(dataDir string, data ReferenceData) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return errors.Wrapf(err, "creating data dir %s", dataDir)
	}

	categories, err := marshalRecords(data.Categories)
	if err != nil {
		return err
	}
	attributes, err := marshalRecords(data.Attributes)
	if err != nil {
		return err
	}
	relations, err := marshalRecords(data.RelationConfigurations)
	if err != nil {
		return err
	}

	files := []struct {
		name    string
		records []json.RawMessage
	}{
		{categoriesJSONL, categories},
		{attributesJSONL, attributes},
		{relationsJSONL, relations},
	}
	for _, f := range files {
		if err := writeJSONL(filepath.Join(dataDir, f.name), f.records); err != nil {
			return errors.Wrapf(err, "writing %s", f.name)
		}
	}
	return nil
}

// HasReferenceData reports whether any reference data file in dataDir is
// non-empty.
func HasReferenceData(dataDir string) (bool, error) {
	for _, name := range jsonlFiles {
		info, err := os.Stat(filepath.Join(dataDir, name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return false, errors.Wrapf(err, "checking %s", name)
		}
		if info.Size() > 0 {
			return true, nil
		}
	}
	return false, nil
}
