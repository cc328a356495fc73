package persistence

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pureiot/support-api/internal/domain"
)

func sampleTicket(number string) domain.Ticket {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Ticket{
		ID:           number,
		TicketNumber: number,
		UserName:     "Jane",
		UserEmail:    "jane@x.com",
		CompanyName:  domain.FieldNotProvided,
		Issue:        "printer down",
		Priority:     domain.TicketPriorityMedium,
		Status:       domain.TicketStatusOpen,
		Comments:     []domain.Comment{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestFileStoreCreatesEmptyDocumentOnFirstAccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickets.json")
	store := NewFileStore(path)

	doc, err := store.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, doc.Tickets)

	_, err = os.Stat(path)
	require.NoError(t, err, "file should exist after first access")
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickets.json")
	store := NewFileStore(path)

	doc := domain.TicketDocument{Tickets: []domain.Ticket{sampleTicket("T-1")}}
	require.NoError(t, store.WriteAll(doc))

	got, err := store.ReadAll()
	require.NoError(t, err)
	require.Len(t, got.Tickets, 1)
	assert.Equal(t, "T-1", got.Tickets[0].TicketNumber)
	assert.Equal(t, domain.TicketStatusOpen, got.Tickets[0].Status)
}

func TestTicketStoreFallsBackToMemory(t *testing.T) {
	// A path inside a directory that does not exist is never writable.
	path := filepath.Join(t.TempDir(), "missing-dir", "tickets.json")
	store := NewTicketStore(path, zap.NewNop())

	require.NoError(t, store.WriteAll(domain.TicketDocument{Tickets: []domain.Ticket{sampleTicket("T-1")}}))
	require.NoError(t, store.Update(func(doc *domain.TicketDocument) error {
		doc.Tickets = append(doc.Tickets, sampleTicket("T-2"))
		return nil
	}))

	doc, err := store.ReadAll()
	require.NoError(t, err)
	require.Len(t, doc.Tickets, 2)
	assert.Equal(t, "T-1", doc.Tickets[0].TicketNumber)
	assert.Equal(t, "T-2", doc.Tickets[1].TicketNumber)
}

func TestTicketStoreUpdateIsReadModifyWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickets.json")
	store := NewTicketStore(path, zap.NewNop())

	for _, number := range []string{"T-1", "T-2", "T-3"} {
		n := number
		require.NoError(t, store.Update(func(doc *domain.TicketDocument) error {
			doc.Tickets = append(doc.Tickets, sampleTicket(n))
			return nil
		}))
	}

	doc, err := store.ReadAll()
	require.NoError(t, err)
	assert.Len(t, doc.Tickets, 3)
}

func TestMemoryStoreClonesOnRead(t *testing.T) {
	store := NewMemoryStore()
	ticket := sampleTicket("T-1")
	ticket.Comments = []domain.Comment{{Text: "hi", Author: "Support Staff", CreatedAt: time.Now()}}
	require.NoError(t, store.WriteAll(domain.TicketDocument{Tickets: []domain.Ticket{ticket}}))

	doc, err := store.ReadAll()
	require.NoError(t, err)
	doc.Tickets[0].Comments[0].Text = "mutated"
	doc.Tickets[0].Status = domain.TicketStatusClosed

	again, err := store.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "hi", again.Tickets[0].Comments[0].Text)
	assert.Equal(t, domain.TicketStatusOpen, again.Tickets[0].Status)
}
