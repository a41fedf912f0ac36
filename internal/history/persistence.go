package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SchemaVersion is the current persistence schema version.
const SchemaVersion = 1

// Persistence defines the interface for history storage.
type Persistence interface {
	// Load reads all records in the order they were written. An entry may
	// appear more than once; the last record wins.
	Load() ([]Entry, error)

	// Append writes an entry record.
	Append(e Entry) error

	// Rewrite replaces the stored records with es.
	Rewrite(es []Entry) error

	// Clear removes all stored records.
	Clear() error

	// Close releases file handles and resources.
	Close() error
}

// schemaHeader is the first line of the JSONL file.
type schemaHeader struct {
	NotibarSchemaVersion int   `json:"notibar_schema_version"`
	CreatedAt            int64 `json:"created_at"`
}

// JSONLPersistence implements Persistence using an append-only JSONL file.
type JSONLPersistence struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	closed bool
}

// NewJSONLPersistence opens or creates the history file at path.
func NewJSONLPersistence(path string) (*JSONLPersistence, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	p := &JSONLPersistence{path: path, file: file}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.Size() == 0 {
		if err := p.writeHeader(); err != nil {
			file.Close()
			return nil, err
		}
	}
	return p, nil
}

// Path returns the file path.
func (p *JSONLPersistence) Path() string {
	return p.path
}

func (p *JSONLPersistence) writeHeader() error {
	data, err := json.Marshal(schemaHeader{
		NotibarSchemaVersion: SchemaVersion,
		CreatedAt:            time.Now().Unix(),
	})
	if err != nil {
		return err
	}
	_, err = p.file.Write(append(data, '\n'))
	return err
}

func (p *JSONLPersistence) writeEntry(e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	_, err = p.file.Write(append(data, '\n'))
	return err
}

// Load reads all records. Malformed lines are skipped.
func (p *JSONLPersistence) Load() ([]Entry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.file == nil {
		return nil, ErrPersistenceClosed
	}

	if _, err := p.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s: %w", p.path, err)
	}

	var entries []Entry
	scanner := bufio.NewScanner(p.file)
	const maxLineSize = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		if lineNum == 1 {
			var header schemaHeader
			if err := json.Unmarshal(line, &header); err == nil && header.NotibarSchemaVersion > 0 {
				if header.NotibarSchemaVersion > SchemaVersion {
					return nil, fmt.Errorf("unsupported schema version %d (max: %d)",
						header.NotibarSchemaVersion, SchemaVersion)
				}
				continue
			}
		}

		var e Entry
		if err := json.Unmarshal(line, &e); err != nil || e.ID == "" {
			continue
		}
		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("error reading file: %w", err)
	}
	return entries, nil
}

// Append writes an entry record and syncs the file.
func (p *JSONLPersistence) Append(e Entry) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.file == nil {
		return ErrPersistenceClosed
	}
	if err := p.writeEntry(e); err != nil {
		return err
	}
	return p.file.Sync()
}

// Rewrite replaces the file contents with es, keeping a backup until the new
// file is complete.
func (p *JSONLPersistence) Rewrite(es []Entry) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.reset(); err != nil {
		return err
	}
	for _, e := range es {
		if err := p.writeEntry(e); err != nil {
			return err
		}
	}
	if err := p.file.Sync(); err != nil {
		return err
	}

	os.Remove(p.path + ".bak")
	return nil
}

// Clear truncates the file to its header.
func (p *JSONLPersistence) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.reset(); err != nil {
		return err
	}
	if err := p.file.Sync(); err != nil {
		return err
	}
	os.Remove(p.path + ".bak")
	return nil
}

// reset moves the current file to a backup and starts a new one with a
// header. Callers hold the lock.
func (p *JSONLPersistence) reset() error {
	if p.closed {
		return ErrPersistenceClosed
	}

	if p.file != nil {
		if err := p.file.Close(); err != nil {
			return err
		}
		p.file = nil
	}

	backupPath := p.path + ".bak"
	if err := os.Rename(p.path, backupPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	file, err := os.OpenFile(p.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND, 0600)
	if err != nil {
		os.Rename(backupPath, p.path)
		return fmt.Errorf("failed to create new file: %w", err)
	}
	p.file = file
	return p.writeHeader()
}

// Close releases the file handle.
func (p *JSONLPersistence) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if p.file != nil {
		err := p.file.Close()
		p.file = nil
		return err
	}
	return nil
}
