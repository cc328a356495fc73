// Package web renders the staff-facing update pages. The markup mirrors the
// emailed deep-link flow: a prefilled status form, then a success or error
// page.
package web

import (
	"bytes"
	"html/template"

	"github.com/pureiot/support-api/internal/repository"
)

var pageTmpl = template.Must(template.New("pages").Parse(`
{{define "head"}}<!DOCTYPE html>
<html>
<head>
  <title>{{.}}</title>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style>
    body {
      font-family: Arial, sans-serif;
      max-width: 600px;
      margin: 50px auto;
      padding: 20px;
      background-color: #f5f5f5;
    }
    .container {
      background-color: white;
      padding: 30px;
      border-radius: 10px;
      box-shadow: 0 2px 10px rgba(0,0,0,0.1);
    }
    h1 { color: #333; }
    .ticket-info, .comments {
      background-color: #f8f9fa;
      padding: 15px;
      border-radius: 5px;
      margin: 20px 0;
    }
    .ticket-info p, .comments p { margin: 5px 0; }
    .comment-meta { color: #6c757d; font-size: 13px; }
    label {
      display: block;
      margin-top: 15px;
      font-weight: bold;
    }
    select, textarea, input {
      width: 100%;
      padding: 10px;
      margin-top: 5px;
      border: 1px solid #ddd;
      border-radius: 5px;
      box-sizing: border-box;
    }
    textarea { min-height: 100px; }
    button {
      background-color: #007bff;
      color: white;
      padding: 12px 30px;
      border: none;
      border-radius: 5px;
      cursor: pointer;
      font-size: 16px;
      margin-top: 20px;
    }
    button:hover { background-color: #0056b3; }
    .success { color: #28a745; font-size: 24px; }
    .error { color: #dc3545; }
  </style>
</head>
<body>{{end}}

{{define "not_found"}}{{template "head" "Ticket Not Found"}}
  <h1 class="error">Ticket Not Found</h1>
  <p>The ticket {{.TicketID}} could not be found.</p>
</body>
</html>{{end}}

{{define "update_form"}}{{template "head" (printf "Update Ticket %s" .Ticket.TicketNumber)}}
  <div class="container">
    <h1>Update Support Ticket</h1>
    <div class="ticket-info">
      <p><strong>Ticket #:</strong> {{.Ticket.TicketNumber}}</p>
      <p><strong>User:</strong> {{.Ticket.UserName}}</p>
      <p><strong>Email:</strong> {{.Ticket.UserEmail}}</p>
      <p><strong>Company:</strong> {{.Ticket.CompanyName}}</p>
      <p><strong>Priority:</strong> {{.Ticket.Priority}}</p>
      <p><strong>Current Status:</strong> {{.Ticket.Status}}</p>
      <p><strong>Issue:</strong> {{.Ticket.Issue}}</p>
    </div>
    {{if .Ticket.Comments}}<div class="comments">
      <p><strong>Comments:</strong></p>
      {{range .Ticket.Comments}}<p>{{.Text}} <span class="comment-meta">&mdash; {{.Author}}, {{.CreatedAt.Format "2006-01-02 15:04"}}</span></p>
      {{end}}
    </div>{{end}}

    <form action="{{.FormAction}}" method="POST">
      <label for="status">Update Status:</label>
      <select name="status" id="status" required>
        <option value="Open" {{if eq .Ticket.Status "Open"}}selected{{end}}>Open</option>
        <option value="In Progress" {{if eq .Ticket.Status "In Progress"}}selected{{end}}>In Progress</option>
        <option value="Resolved" {{if eq .Ticket.Status "Resolved"}}selected{{end}}>Resolved</option>
        <option value="Closed" {{if eq .Ticket.Status "Closed"}}selected{{end}}>Closed</option>
      </select>

      <label for="notes">Notes (optional):</label>
      <textarea name="notes" id="notes" placeholder="Add any notes about this update..."></textarea>

      <button type="submit">Update Ticket</button>
    </form>
  </div>
</body>
</html>{{end}}

{{define "update_success"}}{{template "head" "Update Successful"}}
  <div class="container" style="text-align: center;">
    <h1 class="success">&#10003; Ticket Updated Successfully!</h1>
    <p>Ticket <strong>{{.TicketID}}</strong> has been updated to <strong>{{.Status}}</strong>.</p>
    <p>An email notification has been sent to {{.UserEmail}}.</p>
  </div>
</body>
</html>{{end}}

{{define "update_error"}}{{template "head" "Error"}}
  <h1>Error updating ticket</h1>
  <p>{{.Message}}</p>
</body>
</html>{{end}}
`))

// FormData feeds the update form view.
type FormData struct {
	Ticket     *repository.ResolvedTicket
	FormAction string
}

// SuccessData feeds the post-update confirmation page.
type SuccessData struct {
	TicketID  string
	Status    string
	UserEmail string
}

// NotFoundPage renders the unknown-ticket page.
func NotFoundPage(ticketID string) string {
	return render("not_found", struct{ TicketID string }{TicketID: ticketID})
}

// UpdateFormPage renders the prefilled status form.
func UpdateFormPage(data FormData) string {
	return render("update_form", data)
}

// UpdateSuccessPage renders the confirmation page.
func UpdateSuccessPage(data SuccessData) string {
	return render("update_success", data)
}

// UpdateErrorPage renders the browser-facing error page.
func UpdateErrorPage(message string) string {
	return render("update_error", struct{ Message string }{Message: message})
}

func render(name string, data any) string {
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "<!DOCTYPE html><html><body><h1>Error rendering page</h1></body></html>"
	}
	return buf.String()
}
