package mail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pureiot/support-api/internal/domain"
)

func testTicket() domain.Ticket {
	now := time.Now().UTC()
	return domain.Ticket{
		ID:           "T-100",
		TicketNumber: "T-100",
		UserName:     "Jane",
		UserEmail:    "jane@x.com",
		CompanyName:  "Acme",
		Issue:        "printer down",
		Priority:     domain.TicketPriorityHigh,
		Status:       domain.TicketStatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestComposeTicketCreated(t *testing.T) {
	msg, err := ComposeTicketCreated(testTicket(), "support@piot.co.za", "https://support.example.com/update/T-100")
	require.NoError(t, err)

	assert.Equal(t, "support@piot.co.za", msg.To)
	assert.Equal(t, "New Support Ticket: T-100 - High Priority", msg.Subject)
	assert.Contains(t, msg.HTML, "New Support Ticket Received")
	assert.Contains(t, msg.HTML, "Jane")
	assert.Contains(t, msg.HTML, "jane@x.com")
	assert.Contains(t, msg.HTML, "printer down")
	assert.Contains(t, msg.HTML, "https://support.example.com/update/T-100")
	assert.NotContains(t, msg.HTML, "AnyDesk", "blank optional fields are omitted")
}

func TestComposeTicketCreatedOptionalFields(t *testing.T) {
	ticket := testTicket()
	ticket.UserPhone = "555-0100"
	ticket.AnyDeskID = "123456789"
	ticket.ContactPreference = "phone"
	ticket.ScheduledTime = "tomorrow 9am"

	msg, err := ComposeTicketCreated(ticket, "support@piot.co.za", "http://localhost:3001/update/T-100")
	require.NoError(t, err)
	assert.Contains(t, msg.HTML, "555-0100")
	assert.Contains(t, msg.HTML, "123456789")
	assert.Contains(t, msg.HTML, "phone")
	assert.Contains(t, msg.HTML, "tomorrow 9am")
}

func TestComposeTicketCreatedEscapesHTML(t *testing.T) {
	ticket := testTicket()
	ticket.Issue = `<script>alert("x")</script>`

	msg, err := ComposeTicketCreated(ticket, "support@piot.co.za", "http://localhost:3001/update/T-100")
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>")
}

func TestComposeTicketUpdated(t *testing.T) {
	msg, err := ComposeTicketUpdated(testTicket(), domain.TicketStatusResolved, "fixed")
	require.NoError(t, err)

	assert.Equal(t, "jane@x.com", msg.To)
	assert.Equal(t, "Ticket Update: T-100 - Status: Resolved", msg.Subject)
	assert.Contains(t, msg.HTML, "Your Support Ticket Has Been Updated")
	assert.Contains(t, msg.HTML, "Resolved")
	assert.Contains(t, msg.HTML, "fixed")
	assert.Contains(t, msg.HTML, "PUREIOT Support Team")
}

func TestComposeTicketUpdatedWithoutNotes(t *testing.T) {
	msg, err := ComposeTicketUpdated(testTicket(), domain.TicketStatusClosed, "")
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "Notes:")
}
