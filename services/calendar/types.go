package calendar

// Wire shapes for the Graph calendar/mail API. Field names follow the
// remote contract, not Go conventions.

// DateTimeZone is a wall-clock timestamp paired with an IANA timezone name.
type DateTimeZone struct {
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// EmailAddress identifies a mail participant.
type EmailAddress struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

// Recipient wraps an email address for message routing fields.
type Recipient struct {
	EmailAddress EmailAddress `json:"emailAddress"`
}

// Attendee is an event participant.
type Attendee struct {
	EmailAddress EmailAddress `json:"emailAddress"`
	Type         string       `json:"type,omitempty"`
}

// ItemBody carries event and message content; ContentType is "HTML" or "Text".
type ItemBody struct {
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

// Event is a calendar event on the consultation mailbox.
type Event struct {
	ID        string       `json:"id,omitempty"`
	Subject   string       `json:"subject"`
	Body      ItemBody     `json:"body"`
	Start     DateTimeZone `json:"start"`
	End       DateTimeZone `json:"end"`
	Attendees []Attendee   `json:"attendees,omitempty"`
}

// Message is an outbound mail message.
type Message struct {
	ID           string      `json:"id,omitempty"`
	Subject      string      `json:"subject"`
	Body         ItemBody    `json:"body"`
	ToRecipients []Recipient `json:"toRecipients"`
}

// collection is the envelope the API wraps list responses in.
type collection[T any] struct {
	Value []T `json:"value"`
}
