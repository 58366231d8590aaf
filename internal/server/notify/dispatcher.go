// Package notify delivers one-time codes and notices to a contact
// identifier. The transport behind it (SMTP gateway, SMS provider) is an
// external system; this package only owns the send contract.
package notify

import "context"

// Dispatcher sends verification material to a destination. The destination
// channel (email vs. SMS) is chosen by the presence of '@' in the
// identifier; see common.IsEmailAddress.
type Dispatcher interface {
	// SendOtp delivers a login/registration code.
	SendOtp(ctx context.Context, destination, code string) error

	// SendForgotPasswordNotice delivers a password-recovery code.
	SendForgotPasswordNotice(ctx context.Context, destination, code string) error
}
