package domain

import "time"

// Channel is the delivery channel a one-time code is sent over.
type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "wa"
	ChannelEmail    Channel = "email"
)

// Valid reports whether c is one of the supported delivery channels.
func (c Channel) Valid() bool {
	switch c {
	case ChannelSMS, ChannelWhatsApp, ChannelEmail:
		return true
	}
	return false
}

// Purpose is the reason a one-time code was requested.
type Purpose string

const (
	PurposeLogin    Purpose = "login"
	PurposeRegister Purpose = "register"
)

// Valid reports whether p is one of the supported purposes.
func (p Purpose) Valid() bool {
	return p == PurposeLogin || p == PurposeRegister
}

// OtpRecord is the ephemeral one-time-code entry kept in the key-value store.
// Only the bcrypt hash of the code is ever stored; the plaintext lives in
// memory for the duration of the issuing request and in the delivered message.
type OtpRecord struct {
	CodeHash  string    `json:"code_hash"`
	Channel   Channel   `json:"channel"`
	CreatedAt time.Time `json:"created_at"`
}
