package notify

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/trademart/marketplace/internal/logging"
)

func TestConsoleDispatcherChannels(t *testing.T) {
	var buf bytes.Buffer
	d := NewConsoleDispatcher(logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	ctx := context.Background()

	tests := []struct {
		name        string
		destination string
		wantChannel string
	}{
		{"email destination", "user@example.com", "channel=email"},
		{"phone destination", "79001112233", "channel=sms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			if err := d.SendOtp(ctx, tt.destination, "123456"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			out := buf.String()
			if !strings.Contains(out, tt.wantChannel) {
				t.Errorf("expected %q in log output, got %q", tt.wantChannel, out)
			}
			if !strings.Contains(out, "123456") {
				t.Errorf("expected the code in log output, got %q", out)
			}
		})
	}
}

func TestConsoleDispatcherForgotPasswordNotice(t *testing.T) {
	var buf bytes.Buffer
	d := NewConsoleDispatcher(logging.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	if err := d.SendForgotPasswordNotice(context.Background(), "user@example.com", "654321"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "recovery") {
		t.Errorf("expected a recovery log line, got %q", buf.String())
	}
}
