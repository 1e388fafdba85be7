// Package mail defines the account-email messages, the queue-backed
// dispatcher the services publish through, and the SMTP sender the worker
// delivers with.
package mail

import "fmt"

// Message is one email job. It travels as JSON over the mail queue.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Header  string `json:"header"`
	Intro   string `json:"intro"`
	Code    string `json:"code"`
	Notice  string `json:"notice"`
	Footer  string `json:"footer"`
}

// OTPMessage builds the verification email carrying an OTP code.
func OTPMessage(recipient, code string) Message {
	return Message{
		To:      recipient,
		Subject: "OTP verification code",
		Header:  "Your OTP code.",
		Intro:   "Use the following OTP code to complete your verification:",
		Code:    code,
		Notice:  "This code is valid for 10 minutes. Please do not share it with anyone.",
		Footer:  "If you didn't request this code, please ignore this email.",
	}
}

func (m Message) validate() error {
	if m.To == "" {
		return fmt.Errorf("mail message requires a recipient")
	}
	if m.Subject == "" {
		return fmt.Errorf("mail message requires a subject")
	}
	return nil
}
