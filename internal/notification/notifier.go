package notification

import (
	"context"

	"go.uber.org/zap"
)

// WelcomeMessage is the notification sent to a freshly created employee.
// The one-time password is not included; it is shown once in the creation
// response and the message only tells the employee an account exists.
type WelcomeMessage struct {
	Name         string
	Email        string
	EmployeeCode string
}

//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock
type Notifier interface {
	SendWelcome(ctx context.Context, msg WelcomeMessage) error
}

// LogNotifier records the notification instead of delivering it. Actual
// delivery (SMTP, SMS, ...) plugs in behind the same interface.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notification")}
}

func (n *LogNotifier) SendWelcome(_ context.Context, msg WelcomeMessage) error {
	n.logger.Info("welcome notification",
		zap.String("email", msg.Email),
		zap.String("name", msg.Name),
		zap.String("employee_code", msg.EmployeeCode),
	)
	return nil
}
