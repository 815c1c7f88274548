package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Message is a plain text email addressed to one recipient.
type Message struct {
	ToEmail string
	ToName  string
	Subject string
	Body    string
}

// Notifier delivers messages to account holders.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// OTPMessage renders the one-time code delivery email.
func OTPMessage(email, name string, code int, validMinutes int) Message {
	return Message{
		ToEmail: email,
		ToName:  name,
		Subject: "Your verification code",
		Body: fmt.Sprintf("Hello %s,\n\nYour verification code is %d. It is valid for %d minutes.\n",
			name, code, validMinutes),
	}
}

// ApplicationReceivedMessage confirms a submitted application to the applicant.
func ApplicationReceivedMessage(email, name, taskName string) Message {
	return Message{
		ToEmail: email,
		ToName:  name,
		Subject: "Application received: " + taskName,
		Body: fmt.Sprintf("Hello %s,\n\nWe received your application for %q. The organization will review it shortly.\n",
			name, taskName),
	}
}

// ApplicationDecisionMessage tells the applicant the outcome of a review.
func ApplicationDecisionMessage(email, name, taskName, status string) Message {
	return Message{
		ToEmail: email,
		ToName:  name,
		Subject: "Application " + status + ": " + taskName,
		Body:    fmt.Sprintf("Hello %s,\n\nYour application for %q is now %s.\n", name, taskName, status),
	}
}

// NGOApprovalMessage tells an organization whether it was approved.
func NGOApprovalMessage(email, name string, approved bool) Message {
	outcome := "was not approved"
	if approved {
		outcome = "has been approved. You can now post tasks"
	}
	return Message{
		ToEmail: email,
		ToName:  name,
		Subject: "Organization review",
		Body:    fmt.Sprintf("Hello %s,\n\nYour organization %s.\n", name, outcome),
	}
}

// LogNotifier writes messages to the log instead of sending them.
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(ctx context.Context, msg Message) error {
	n.log.Info("notification",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
