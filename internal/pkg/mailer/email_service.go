package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendOrderConfirmation(toEmail, fullName, orderId string, amount float64) error
	SendRefundProcessed(toEmail, fullName, orderId string, amount float64) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, email, password, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, email, password)

	return &emailService{
		dialer:      d,
		senderEmail: email,
		senderName:  senderName,
	}
}

func (s *emailService) SendOrderConfirmation(toEmail, fullName, orderId string, amount float64) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your order is confirmed")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Thank you for your order, %s!</h2>
			<p>Your order <strong>%s</strong> has been placed successfully.</p>
			<p>Order total: <strong>Rs. %.2f</strong></p>
			<p>We will notify you when it ships.</p>
		</div>
	`, fullName, orderId, amount)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send order confirmation to %s: %v\n", toEmail, err)
		return err
	}
	return nil
}

func (s *emailService) SendRefundProcessed(toEmail, fullName, orderId string, amount float64) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your refund has been processed")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s,</h2>
			<p>Your refund for order <strong>%s</strong> has been processed.</p>
			<p>Refund amount: <strong>Rs. %.2f</strong></p>
			<p>Depending on your bank, it may take 5-7 business days to reflect.</p>
		</div>
	`, fullName, orderId, amount)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send refund email to %s: %v\n", toEmail, err)
		return err
	}
	return nil
}
