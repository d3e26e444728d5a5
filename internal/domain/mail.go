package domain

import "io"

// MailOptions carries the optional parts of an outgoing mail. The zero value
// produces a plain text mail addressed only to the TO recipients.
type MailOptions struct {
	ReplyTo     string // empty value falls back to the sender address
	HtmlBody    string // when set, the mail carries an HTML alternative part
	Cc          []string
	Bcc         []string
	Attachments []MailAttachment
}

// MailAttachment describes a single file that is attached to an outgoing
// mail, either as a regular attachment or as an embedded (inline) resource.
type MailAttachment struct {
	Name        string
	ContentType string
	Data        io.Reader
	Embedded    bool
}
