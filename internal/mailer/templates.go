package mailer

import "html/template"

// Email bodies rendered server-side and handed to the delivery
// provider as HTML.

var sponsorConfirmationTmpl = template.Must(template.New("sponsor_confirmation").Parse(`
<html>
  <body style="font-family: sans-serif; color: #1f2937;">
    <h2>Booking confirmed</h2>
    <p>Hi {{.SponsorName}},</p>
    <p>
      Your sponsorship of <strong>{{.NewsletterName}}</strong> is confirmed.
    </p>
    <table cellpadding="4">
      <tr><td>Placement</td><td><strong>{{.SlotTypeName}}</strong></td></tr>
      <tr><td>Run date</td><td>{{.Date}}</td></tr>
      <tr><td>Amount paid</td><td>${{printf "%.2f" .Price}}</td></tr>
      <tr><td>Landing page</td><td>{{.WebsiteURL}}</td></tr>
    </table>
    <p>Submitted ad copy:</p>
    <blockquote>{{.AdCopy}}</blockquote>
    <p>The creator has been notified and will deliver your placement on the scheduled date.</p>
  </body>
</html>
`))

var creatorNotificationTmpl = template.Must(template.New("creator_notification").Parse(`
<html>
  <body style="font-family: sans-serif; color: #1f2937;">
    <h2>New sponsorship booked</h2>
    <p>Hi {{.NewsletterName}},</p>
    <p><strong>{{.SponsorName}}</strong> ({{.SponsorEmail}}) just booked a placement.</p>
    <table cellpadding="4">
      <tr><td>Placement</td><td><strong>{{.SlotTypeName}}</strong></td></tr>
      <tr><td>Run date</td><td>{{.Date}}</td></tr>
      <tr><td>Amount</td><td>${{printf "%.2f" .Price}}</td></tr>
      <tr><td>Sponsor site</td><td>{{.WebsiteURL}}</td></tr>
    </table>
    <p>Ad copy:</p>
    <blockquote>{{.AdCopy}}</blockquote>
    {{if .CreativeFileURL}}<p><a href="{{.CreativeFileURL}}">Creative file</a></p>{{end}}
    <p><a href="{{.DashboardURL}}">Open your dashboard</a> to review the booking.</p>
  </body>
</html>
`))
