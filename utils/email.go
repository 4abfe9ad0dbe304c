package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// Configured reports whether enough SMTP settings are present to send mail.
func (c *EmailConfig) Configured() bool {
	return c.Host != "" && c.Port != "" && c.From != ""
}

func SendEmail(to, subject, htmlBody string) error {
	config := GetEmailConfig()
	if !config.Configured() {
		return fmt.Errorf("SMTP not configured")
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		config.From, to, subject)
	msg := []byte(headers + htmlBody)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	addr := config.Host + ":" + config.Port
	return smtp.SendMail(addr, auth, config.From, []string{to}, msg)
}

// RestaurantWelcomeBody renders the welcome mail sent after self-service signup.
func RestaurantWelcomeBody(ownerName, restaurantName, menuURL, dashboardURL string) string {
	greeting := "there"
	if fields := strings.Fields(ownerName); len(fields) > 0 {
		greeting = fields[0]
	}
	return fmt.Sprintf(`<h2>Welcome to MenuHub, %s!</h2>
<p><strong>%s</strong> is ready. Your public menu lives at:</p>
<p><a href="%s">%s</a></p>
<p>From the dashboard you can:</p>
<ul>
<li>Add categories and menu items in Arabic and English</li>
<li>Upload your logo, banner and dish photos</li>
<li>Tell your story on the about page</li>
</ul>
<p><a href="%s" style="display:inline-block;padding:12px 24px;background:#1f2937;color:#ffffff;text-decoration:none;border-radius:8px;font-weight:bold;">Open Dashboard</a></p>
<p>The MenuHub Team</p>`, greeting, restaurantName, menuURL, menuURL, dashboardURL)
}

// SendRestaurantWelcomeEmail is fire-and-forget; failures are only logged.
func SendRestaurantWelcomeEmail(email, ownerName, restaurantName, slug string) {
	if email == "" || !GetEmailConfig().Configured() {
		return
	}
	publicBase := strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/")
	frontend := strings.TrimRight(os.Getenv("FRONTEND_URL"), "/")
	menuURL := fmt.Sprintf("%s/%s", publicBase, slug)
	dashboardURL := fmt.Sprintf("%s/dashboard", frontend)

	go func() {
		subject := fmt.Sprintf("%s is live on MenuHub", restaurantName)
		body := RestaurantWelcomeBody(ownerName, restaurantName, menuURL, dashboardURL)
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}()
}
