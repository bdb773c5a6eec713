package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

var (
	emailFrom     = os.Getenv("EMAIL_FROM")
	emailPassword = os.Getenv("EMAIL_PASSWORD")
	smtpHost      = os.Getenv("SMTP_HOST")
	smtpPort      = os.Getenv("SMTP_PORT")
	companyName   = "Elite Car Rentals"
	baseURL       = os.Getenv("BASE_URL")
)

// Common header template for all emails
const emailHeader = `
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<div style="text-align: center; margin-bottom: 30px; background-color: #f9f9f9; padding: 20px;">
			<h2 style="color: #b8860b; margin: 0;">Elite Car Rentals</h2>
		</div>
`

// Common footer template for all emails
const emailFooter = `
		<div style="text-align: center; margin-top: 20px; font-size: 12px; color: #666; border-top: 1px solid #eee; padding-top: 20px;">
			<p>This is an automated message, please do not reply to this email.</p>
			<p>© 2025 Elite Car Rentals. All rights reserved.</p>
		</div>
	</div>
</body>
</html>
`

func sendEmail(to []string, subject, body string) error {
	if emailFrom == "" || emailPassword == "" || smtpHost == "" || smtpPort == "" {
		return fmt.Errorf("email configuration not set")
	}

	// Headers
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", companyName, emailFrom)
	headers["To"] = strings.Join(to, ",")
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	// Build message
	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + body

	auth := smtp.PlainAuth("", emailFrom, emailPassword, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, emailFrom, to, []byte(message))
	if err != nil {
		log.Printf("Failed to send email: %v", err)
		return err
	}

	log.Printf("Successfully sent email to recipients: %v", to)
	return nil
}

func SendBookingConfirmedEmail(customerEmail, customerName, carName, reference string, total float64, currency string) error {
	subject := "Booking Confirmed - Elite Car Rentals"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Booking Confirmed</h1>
					<p>Hello %s,</p>
					<p>Great news! Your booking <strong>%s</strong> for <strong>%s</strong> has been confirmed.</p>
					<p>Total paid: <strong>%s%.2f</strong></p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/my-bookings" style="background-color: #b8860b; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">View Your Booking</a>
					</div>
					<p>Best regards,<br>The Elite Car Rentals Team</p>
				</div>`+emailFooter,
		customerName, reference, carName, currency, total, baseURL)

	return sendEmail([]string{customerEmail}, subject, body)
}

func SendBookingCancelledEmail(customerEmail, customerName, reference string) error {
	subject := "Booking Cancelled - Elite Car Rentals"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Booking Cancelled</h1>
					<p>Hello %s,</p>
					<p>Your booking <strong>%s</strong> has been cancelled.</p>
					<p>We hope to see you again soon. You can browse our fleet and book another car any time.</p>
					<div style="text-align: center; margin: 30px 0;">
						<a href="%s/cars" style="background-color: #b8860b; color: white; padding: 12px 25px; text-decoration: none; border-radius: 5px;">Browse Cars</a>
					</div>
					<p>Best regards,<br>The Elite Car Rentals Team</p>
				</div>`+emailFooter,
		customerName, reference, baseURL)

	return sendEmail([]string{customerEmail}, subject, body)
}

func SendInquiryAcknowledgementEmail(email, name, subjectLine string) error {
	subject := "We received your inquiry - Elite Car Rentals"
	body := fmt.Sprintf(emailHeader+`
				<div style="background-color: #f9f9f9; padding: 20px; border-radius: 5px;">
					<h1 style="color: #2c3e50; text-align: center;">Thanks for reaching out</h1>
					<p>Hello %s,</p>
					<p>We received your inquiry <strong>"%s"</strong> and our team will get back to you shortly.</p>
					<p>Best regards,<br>The Elite Car Rentals Team</p>
				</div>`+emailFooter,
		name, subjectLine)

	return sendEmail([]string{email}, subject, body)
}
