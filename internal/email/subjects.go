package email

const (
	quoteNotificationFromName   = "Quote Request"
	subjectQuoteNotificationFmt = "New Photo Booth Quote Request - %s"
	subjectQuoteConfirmation    = "We received your quote request!"
)
