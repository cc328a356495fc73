package persistence

import (
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/pureiot/support-api/internal/domain"
)

// DocumentStore reads and rewrites the whole ticket collection. There are no
// partial writes; every mutation replaces the document.
type DocumentStore interface {
	ReadAll() (domain.TicketDocument, error)
	WriteAll(domain.TicketDocument) error
}

// MemoryStore keeps the document for the process lifetime only.
type MemoryStore struct {
	mu  sync.RWMutex
	doc domain.TicketDocument
}

// NewMemoryStore returns an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{doc: domain.TicketDocument{Tickets: []domain.Ticket{}}}
}

func (s *MemoryStore) ReadAll() (domain.TicketDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDocument(s.doc), nil
}

func (s *MemoryStore) WriteAll(doc domain.TicketDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = cloneDocument(doc)
	return nil
}

// FileStore persists the document as indented JSON at a fixed path. The file
// is created with an empty ticket list on first access.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) ReadAll() (domain.TicketDocument, error) {
	if err := s.init(); err != nil {
		return domain.TicketDocument{}, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.TicketDocument{}, err
	}
	var doc domain.TicketDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.TicketDocument{}, err
	}
	if doc.Tickets == nil {
		doc.Tickets = []domain.Ticket{}
	}
	return doc, nil
}

func (s *FileStore) WriteAll(doc domain.TicketDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *FileStore) init() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	empty := domain.TicketDocument{Tickets: []domain.Ticket{}}
	data, err := json.MarshalIndent(empty, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// TicketStore wraps a file store with an in-memory fallback so the service
// keeps working on platforms without writable storage. Once a file operation
// fails, all traffic stays on the in-memory document for the process
// lifetime. Update serializes read-modify-write cycles so two concurrent
// mutations cannot overwrite each other.
type TicketStore struct {
	mu       sync.Mutex
	file     *FileStore
	memory   *MemoryStore
	degraded bool
	logger   *zap.Logger
}

// NewTicketStore builds the fallback-wrapped store.
func NewTicketStore(path string, logger *zap.Logger) *TicketStore {
	return &TicketStore{
		file:   NewFileStore(path),
		memory: NewMemoryStore(),
		logger: logger,
	}
}

// ReadAll returns the current document.
func (s *TicketStore) ReadAll() (domain.TicketDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

// WriteAll replaces the document.
func (s *TicketStore) WriteAll(doc domain.TicketDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(doc)
}

// Update applies fn to the document and persists the result under a single
// lock acquisition.
func (s *TicketStore) Update(fn func(*domain.TicketDocument) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.readLocked()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return s.writeLocked(doc)
}

func (s *TicketStore) readLocked() (domain.TicketDocument, error) {
	if s.degraded {
		return s.memory.ReadAll()
	}
	doc, err := s.file.ReadAll()
	if err != nil {
		s.degrade(err)
		return s.memory.ReadAll()
	}
	return doc, nil
}

func (s *TicketStore) writeLocked(doc domain.TicketDocument) error {
	if s.degraded {
		return s.memory.WriteAll(doc)
	}
	if err := s.file.WriteAll(doc); err != nil {
		s.degrade(err)
		return s.memory.WriteAll(doc)
	}
	return nil
}

func (s *TicketStore) degrade(err error) {
	s.degraded = true
	if s.logger != nil {
		s.logger.Warn("ticket file not writable; using in-memory store", zap.Error(err))
	}
}

func cloneDocument(doc domain.TicketDocument) domain.TicketDocument {
	out := domain.TicketDocument{Tickets: make([]domain.Ticket, len(doc.Tickets))}
	copy(out.Tickets, doc.Tickets)
	for i := range out.Tickets {
		if len(doc.Tickets[i].Comments) > 0 {
			comments := make([]domain.Comment, len(doc.Tickets[i].Comments))
			copy(comments, doc.Tickets[i].Comments)
			out.Tickets[i].Comments = comments
		}
	}
	return out
}
