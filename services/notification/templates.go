package notification

import "fmt"

// PaymentReminderEmail renders the pre-due payment reminder.
func PaymentReminderEmail(to, clientName string, amountDue float64, dueDate, portalURL string) EmailMessage {
	return EmailMessage{
		To:      to,
		ToName:  clientName,
		Subject: "Payment reminder: your booking payment is due soon",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\n"+
				"This is a friendly reminder that a payment of %.2f for your booking is due on %s.\n"+
				"You can review your booking and pay securely here:\n%s\n\n"+
				"Thank you!\n",
			clientName, amountDue, dueDate, portalURL,
		),
		HTMLBody: fmt.Sprintf(
			`<p>Hi %s,</p><p>This is a friendly reminder that a payment of <strong>%.2f</strong> for your booking is due on <strong>%s</strong>.</p><p><a href="%s">Review your booking and pay securely</a></p><p>Thank you!</p>`,
			clientName, amountDue, dueDate, portalURL,
		),
	}
}

// PostEventNudgeEmail renders the day-after balance nudge.
func PostEventNudgeEmail(to, clientName string, balanceDue float64, portalURL string) EmailMessage {
	return EmailMessage{
		To:      to,
		ToName:  clientName,
		Subject: "Thank you! A balance remains on your booking",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\n"+
				"Thank you for your event yesterday — we hope it was wonderful!\n"+
				"A balance of %.2f remains on your booking. You can settle it here:\n%s\n\n"+
				"Thank you!\n",
			clientName, balanceDue, portalURL,
		),
		HTMLBody: fmt.Sprintf(
			`<p>Hi %s,</p><p>Thank you for your event yesterday — we hope it was wonderful!</p><p>A balance of <strong>%.2f</strong> remains on your booking. <a href="%s">Settle it here</a>.</p><p>Thank you!</p>`,
			clientName, balanceDue, portalURL,
		),
	}
}

// ContractSentEmail renders the contract-ready notification with the
// client's portal link.
func ContractSentEmail(to, clientName, photographerName, portalURL string) EmailMessage {
	return EmailMessage{
		To:      to,
		ToName:  clientName,
		Subject: fmt.Sprintf("%s sent you a contract to review", photographerName),
		TextBody: fmt.Sprintf(
			"Hi %s,\n\n"+
				"%s has sent you a contract to review and sign.\n"+
				"Open your booking portal to read and sign it:\n%s\n\n",
			clientName, photographerName, portalURL,
		),
		HTMLBody: fmt.Sprintf(
			`<p>Hi %s,</p><p>%s has sent you a contract to review and sign.</p><p><a href="%s">Open your booking portal</a> to read and sign it.</p>`,
			clientName, photographerName, portalURL,
		),
	}
}
