// Package service contains background jobs and outbound integrations that
// don't belong to a single endpoint.
package service

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// SendVerificationMail mails the confirmation link for a freshly registered
// (or re-requesting) account. The token is the bare email JWT, valid for a
// day.
func SendVerificationMail(token, sendTo string) error {
	from := viper.GetString("mail.from")
	if sendTo == from {
		return errors.New("invalid email address")
	}

	var s string
	if viper.GetBool("host.ssl.enabled") {
		s = "s"
	}

	confirmLink := fmt.Sprintf("http%v://%v/api/auth/confirmed_email/%v",
		s, viper.GetString("host.domain"), token)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", sendTo)
	m.SetHeader("Subject", "Confirm your email")
	m.SetBody("text/html", fmt.Sprintf(
		"Click <a href='%v'>here</a> to confirm your email.<br><br>This link will expire in 24 hours.",
		confirmLink))

	d := gomail.NewDialer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		viper.GetString("mail.username"),
		viper.GetString("mail.password"),
	)

	return d.DialAndSend(m)
}
