package mail

import (
	"bytes"
	"html/template"
	"time"
)

type InvoiceData struct {
	AgentName   string
	CarrierName string
	Amount      float64
	Percentage  float64
	LoadAmount  float64
	PaymentLink string
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Commission Invoice</h2>
  <p>Agent: <strong>{{.AgentName}}</strong></p>
  <p>Carrier: {{.CarrierName}}</p>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td>Load amount</td><td>${{printf "%.2f" .LoadAmount}}</td></tr>
    <tr><td>Commission rate</td><td>{{printf "%.2f" .Percentage}}%</td></tr>
    <tr><td><strong>Amount due</strong></td><td><strong>${{printf "%.2f" .Amount}}</strong></td></tr>
  </table>
  <p><a href="{{.PaymentLink}}">Pay this invoice</a></p>
  <p style="color:#888;font-size:12px;">This link replaces any previously issued payment link.</p>
</body>
</html>`))

func RenderInvoice(d InvoiceData) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type ReminderData struct {
	Title       string
	With        string
	ScheduledAt time.Time
	Notes       string
}

var reminderTmpl = template.Must(template.New("reminder").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Meeting reminder</h2>
  <p><strong>{{.Title}}</strong> with {{.With}}</p>
  <p>Scheduled for {{.ScheduledAt.Format "Mon, 02 Jan 2006 15:04 MST"}}</p>
  {{if .Notes}}<p>{{.Notes}}</p>{{end}}
</body>
</html>`))

func RenderReminder(d ReminderData) (string, error) {
	var buf bytes.Buffer
	if err := reminderTmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
