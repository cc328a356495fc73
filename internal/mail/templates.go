package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/pureiot/support-api/internal/domain"
)

var ticketCreatedTmpl = template.Must(template.New("ticket_created").Parse(`
<h2>New Support Ticket Received</h2>
<p><strong>Ticket Number:</strong> {{.Ticket.TicketNumber}}</p>
<p><strong>User:</strong> {{.Ticket.UserName}} ({{.Ticket.UserEmail}})</p>
{{if .Ticket.UserPhone}}<p><strong>Phone:</strong> {{.Ticket.UserPhone}}</p>
{{end}}<p><strong>Company:</strong> {{.Ticket.CompanyName}}</p>
{{if .Ticket.AnyDeskID}}<p><strong>AnyDesk ID:</strong> {{.Ticket.AnyDeskID}}</p>
{{end}}<p><strong>Priority:</strong> {{.Ticket.Priority}}</p>
{{if .Ticket.ContactPreference}}<p><strong>Contact Preference:</strong> {{.Ticket.ContactPreference}}</p>
{{end}}{{if .Ticket.ScheduledTime}}<p><strong>Scheduled Time:</strong> {{.Ticket.ScheduledTime}}</p>
{{end}}<p><strong>Issue:</strong></p>
<p>{{.Ticket.Issue}}</p>
<hr>
<p><a href="{{.UpdateLink}}" style="background-color: #007bff; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Update Ticket Status</a></p>
`))

var ticketUpdatedTmpl = template.Must(template.New("ticket_updated").Parse(`
<h2>Your Support Ticket Has Been Updated</h2>
<p><strong>Ticket Number:</strong> {{.Ticket.TicketNumber}}</p>
<p><strong>New Status:</strong> {{.NewStatus}}</p>
{{if .Notes}}<p><strong>Notes:</strong> {{.Notes}}</p>
{{end}}<hr>
<p>Thank you for your patience.</p>
<p>PUREIOT Support Team</p>
`))

type createdData struct {
	Ticket     domain.Ticket
	UpdateLink string
}

type updatedData struct {
	Ticket    domain.Ticket
	NewStatus domain.TicketStatus
	Notes     string
}

// ComposeTicketCreated builds the staff notification for a new ticket.
func ComposeTicketCreated(ticket domain.Ticket, supportEmail, updateLink string) (Message, error) {
	var buf bytes.Buffer
	if err := ticketCreatedTmpl.Execute(&buf, createdData{Ticket: ticket, UpdateLink: updateLink}); err != nil {
		return Message{}, err
	}
	return Message{
		To:      supportEmail,
		Subject: fmt.Sprintf("New Support Ticket: %s - %s Priority", ticket.TicketNumber, ticket.Priority),
		HTML:    buf.String(),
	}, nil
}

// ComposeTicketUpdated builds the customer notification for a status change.
func ComposeTicketUpdated(ticket domain.Ticket, newStatus domain.TicketStatus, notes string) (Message, error) {
	var buf bytes.Buffer
	if err := ticketUpdatedTmpl.Execute(&buf, updatedData{Ticket: ticket, NewStatus: newStatus, Notes: notes}); err != nil {
		return Message{}, err
	}
	return Message{
		To:      ticket.UserEmail,
		Subject: fmt.Sprintf("Ticket Update: %s - Status: %s", ticket.TicketNumber, newStatus),
		HTML:    buf.String(),
	}, nil
}
