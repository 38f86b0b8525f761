// Package notify reports run outcomes to operators.
//
// The mail notifier owns transport and formatting; the pipeline only hands
// it an Outcome. When SMTP is not configured the log notifier is used
// instead.
package notify
