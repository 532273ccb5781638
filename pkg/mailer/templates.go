package mailer

import "fmt"

// WinnerSubject builds the subject line for a winner announcement
func WinnerSubject(position int) string {
	return fmt.Sprintf("You Won! Prize Position #%d", position)
}

// WinnerBody builds the HTML body for a winner announcement
func WinnerBody(name string, position int, contestDate string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1>Congratulations, %s!</h1>
  <p>You have been selected as a winner in the %s contest.</p>
  <p>Your prize position: <strong>#%d</strong></p>
  <p>Our team will contact you within 48 hours with claim instructions.</p>
</div>`, name, contestDate, position)
}

// EntryConfirmationSubject is the subject for a paid entry confirmation
const EntryConfirmationSubject = "Payment Successful - Contest Entry Confirmed"

// EntryConfirmationBody builds the HTML body for a paid entry confirmation
func EntryConfirmationBody(name, paymentID string, amount float64) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1>Entry Confirmed</h1>
  <p>Hi %s, your payment of ₹%.0f was received and your contest entry is confirmed.</p>
  <p>Payment reference: <strong>%s</strong></p>
  <p>Winners are announced after each session closes. Good luck!</p>
</div>`, name, amount, paymentID)
}
