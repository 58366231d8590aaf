package notify

import (
	"context"

	"github.com/trademart/marketplace/internal/common"
	"github.com/trademart/marketplace/internal/logging"
)

// ConsoleDispatcher writes deliveries to the structured log instead of a
// real gateway. It is the default in development and the fallback until a
// provider integration is configured.
type ConsoleDispatcher struct {
	logger logging.Logger
}

func NewConsoleDispatcher(logger logging.Logger) *ConsoleDispatcher {
	return &ConsoleDispatcher{logger: logger.With("module", "notify")}
}

func (d *ConsoleDispatcher) SendOtp(ctx context.Context, destination, code string) error {
	d.logger.Info(ctx, "simulated otp delivery",
		"channel", channel(destination),
		"destination", destination,
		"code", code,
	)
	return nil
}

func (d *ConsoleDispatcher) SendForgotPasswordNotice(ctx context.Context, destination, code string) error {
	d.logger.Info(ctx, "simulated password recovery delivery",
		"channel", channel(destination),
		"destination", destination,
		"code", code,
	)
	return nil
}

func channel(destination string) string {
	if common.IsEmailAddress(destination) {
		return "email"
	}
	return "sms"
}
