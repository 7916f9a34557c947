// Package notify delivers high-priority recommendations to webhook targets
// (Slack, Teams, or plain HTTP POST), with a per machine+category cooldown
// to suppress repeat notifications.
package notify
