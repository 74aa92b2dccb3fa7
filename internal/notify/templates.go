package notify

import (
	"fmt"

	"github.com/everestpress/printshop-api/internal/models"
)

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func OrderAdminAlert(o *models.Order, serviceName string) Message {
	return Message{
		Subject: fmt.Sprintf("New Order Received - Order #%s", shortID(o.ID)),
		HTML: fmt.Sprintf(`<h2>New Order Notification</h2>
<p><strong>Order ID:</strong> %s</p>
<p><strong>Customer:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Service:</strong> %s</p>
<p><strong>Quantity:</strong> %d</p>
<p><strong>Total Amount:</strong> $%.2f</p>
<p><strong>Address:</strong> %s</p>
<p><strong>Special Requests:</strong> %s</p>`,
			o.ID, o.CustomerName, o.CustomerEmail, orDefault(o.CustomerPhone, "N/A"),
			serviceName, o.Quantity, o.TotalAmount,
			orDefault(o.Address, "N/A"), orDefault(o.SpecialRequests, "None")),
		Text: fmt.Sprintf("New order received from %s (%s). Order ID: %s. Total: $%.2f",
			o.CustomerName, o.CustomerEmail, o.ID, o.TotalAmount),
	}
}

func OrderConfirmation(o *models.Order, serviceName string) Message {
	return Message{
		To:      o.CustomerEmail,
		Subject: fmt.Sprintf("Order Confirmation - Order #%s", shortID(o.ID)),
		HTML: fmt.Sprintf(`<h2>Thank You for Your Order!</h2>
<p>Dear %s,</p>
<p>We have received your order and will process it shortly.</p>
<h3>Order Details:</h3>
<p><strong>Order ID:</strong> %s</p>
<p><strong>Service:</strong> %s</p>
<p><strong>Quantity:</strong> %d</p>
<p><strong>Total Amount:</strong> $%.2f</p>
<p>We will contact you soon with further updates.</p>`,
			o.CustomerName, o.ID, serviceName, o.Quantity, o.TotalAmount),
		Text: fmt.Sprintf("Thank you for your order! Order ID: %s. Total: $%.2f", o.ID, o.TotalAmount),
	}
}

func OrderStatusUpdate(o *models.Order) Message {
	return Message{
		To:      o.CustomerEmail,
		Subject: fmt.Sprintf("Order Status Update - Order #%s", shortID(o.ID)),
		HTML: fmt.Sprintf(`<h2>Order Status Update</h2>
<p>Dear %s,</p>
<p>Your order status has been updated.</p>
<p><strong>Order ID:</strong> %s</p>
<p><strong>New Status:</strong> %s</p>
<p><strong>Payment Status:</strong> %s</p>
<p>Thank you for your business!</p>`,
			o.CustomerName, o.ID, o.Status, o.PaymentStatus),
		Text: fmt.Sprintf("Your order %s status has been updated to %s", o.ID, o.Status),
	}
}

func QuoteAdminAlert(q *models.Quote) Message {
	budget := "Not specified"
	if q.Budget != nil {
		budget = fmt.Sprintf("$%.2f", *q.Budget)
	}
	return Message{
		Subject: fmt.Sprintf("New Quote Request - %s", q.ServiceType),
		HTML: fmt.Sprintf(`<h2>New Quote Request</h2>
<p><strong>Quote ID:</strong> %s</p>
<p><strong>Customer:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Service Type:</strong> %s</p>
<p><strong>Budget:</strong> %s</p>
<p><strong>Description:</strong></p>
<p>%s</p>`,
			q.ID, q.CustomerName, q.CustomerEmail, orDefault(q.CustomerPhone, "N/A"),
			q.ServiceType, budget, q.Description),
		Text: fmt.Sprintf("New quote request from %s (%s) for %s. Quote ID: %s",
			q.CustomerName, q.CustomerEmail, q.ServiceType, q.ID),
	}
}

func QuoteAcknowledgment(q *models.Quote) Message {
	budget := "Not specified"
	if q.Budget != nil {
		budget = fmt.Sprintf("$%.2f", *q.Budget)
	}
	return Message{
		To:      q.CustomerEmail,
		Subject: "Quote Request Received",
		HTML: fmt.Sprintf(`<h2>Thank You for Your Quote Request!</h2>
<p>Dear %s,</p>
<p>We have received your quote request and will review it shortly.</p>
<h3>Request Details:</h3>
<p><strong>Quote ID:</strong> %s</p>
<p><strong>Service Type:</strong> %s</p>
<p><strong>Budget:</strong> %s</p>
<p>Our team will contact you within 24-48 hours with a detailed quote.</p>`,
			q.CustomerName, q.ID, q.ServiceType, budget),
		Text: fmt.Sprintf("Thank you for your quote request! Quote ID: %s. We will contact you soon.", q.ID),
	}
}

func QuoteStatusUpdate(q *models.Quote) Message {
	notes := ""
	if q.AdminNotes != "" {
		notes = fmt.Sprintf("<p><strong>Notes:</strong> %s</p>", q.AdminNotes)
	}
	return Message{
		To:      q.CustomerEmail,
		Subject: fmt.Sprintf("Quote Status Update - %s", q.ServiceType),
		HTML: fmt.Sprintf(`<h2>Quote Status Update</h2>
<p>Dear %s,</p>
<p>Your quote request status has been updated.</p>
<p><strong>Quote ID:</strong> %s</p>
<p><strong>Service Type:</strong> %s</p>
<p><strong>Status:</strong> %s</p>
%s<p>We will contact you with more details soon.</p>`,
			q.CustomerName, q.ID, q.ServiceType, q.Status, notes),
		Text: fmt.Sprintf("Your quote request %s status has been updated to %s", q.ID, q.Status),
	}
}

func ContactAdminAlert(m *models.ContactMessage) Message {
	subject := "New Contact Message"
	if m.Subject != "" {
		subject = fmt.Sprintf("New Contact Message: %s", m.Subject)
	}
	return Message{
		Subject: subject,
		HTML: fmt.Sprintf(`<h2>New Contact Message</h2>
<p><strong>Message ID:</strong> %s</p>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Message:</strong></p>
<p>%s</p>`,
			m.ID, m.Name, m.Email, orDefault(m.Phone, "N/A"), m.Message),
		Text: fmt.Sprintf("New contact message from %s (%s): %s", m.Name, m.Email, m.Message),
	}
}

func ContactAutoReply(m *models.ContactMessage) Message {
	return Message{
		To:      m.Email,
		Subject: "We Received Your Message",
		HTML: fmt.Sprintf(`<h2>Thank You for Contacting Us!</h2>
<p>Dear %s,</p>
<p>We have received your message and will get back to you as soon as possible.</p>
<p>Our team typically responds within 24 hours.</p>`, m.Name),
		Text: "Thank you for contacting us! We have received your message and will respond soon.",
	}
}

func PasswordReset(to, name, token string) Message {
	return Message{
		To:      to,
		Subject: "Password Reset Request",
		HTML: fmt.Sprintf(`<h2>Password Reset</h2>
<p>Dear %s,</p>
<p>We received a request to reset your password. Use the token below within one hour:</p>
<p><code>%s</code></p>
<p>If you did not request this, you can safely ignore this message.</p>`, name, token),
		Text: fmt.Sprintf("Password reset requested. Your reset token (valid for one hour): %s", token),
	}
}
