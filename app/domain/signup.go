package domain

import (
	"time"

	"github.com/google/uuid"
)

// SignupCodeDigits is the length of the operator approval code.
const SignupCodeDigits = 6

// MaxPasswordBytes is the longest password bcrypt accepts. The limit is in
// bytes, so multibyte characters count more than once.
const MaxPasswordBytes = 72

// SignupRequest is a public request for a new account. It is reviewed by an
// operator before any identity is created.
type SignupRequest struct {
	Name           string `json:"nombre" validate:"required,notblank,max=200"`
	Identification string `json:"identificacion" validate:"max=50"`
	Username       string `json:"usuario" validate:"max=100"`
	Email          string `json:"correo" validate:"required,email"`
	Password       string `json:"password" validate:"required,maxbytes=72"`
	Confirm        string `json:"confirmar" validate:"required"`
	CaptchaToken   string `json:"captcha_token"`
}

// SignupRecord is the stored form of a SignupRequest. The password is kept
// only as a hash.
type SignupRecord struct {
	ID             uuid.UUID
	Name           string
	Identification string
	Username       string
	Email          string
	PasswordHash   string
	Code           string
	CreatedAt      time.Time
}

// EmailMessage is a plain-text message for the configured mailer.
type EmailMessage struct {
	To      []string
	Subject string
	Body    string
	ReplyTo string
}
