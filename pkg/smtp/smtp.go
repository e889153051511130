package smtp

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Client представляет почтовый клиент.
type Client struct {
	dialer *gomail.Dialer
}

// NewClient инициализирует Client.
func NewClient(dialer *gomail.Dialer) *Client {
	return &Client{dialer: dialer}
}

// Send sends a single HTML email. Exactly one delivery attempt is made;
// retry policy belongs to the caller.
func (c *Client) Send(to string, subject string, htmlBody string) error {
	msg := gomail.NewMessage()

	domain := viper.GetString("service.smtp.domain")
	messageID := generateMessageID(domain)

	msg.SetHeader("Message-ID", messageID)
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", viper.GetString("service.smtp.email"))
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := c.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}

	return nil
}

func generateMessageID(domain string) string {
	uniqueID := uuid.New().String()
	return fmt.Sprintf("<%s@%s>", uniqueID, domain)
}
