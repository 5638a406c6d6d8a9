// Package otp generates short-lived numeric one-time passcodes.
//
// Codes are drawn uniformly from a fixed digit range using crypto/rand and are
// meant to be stored (hashed) next to an expiry, then verified once. This is
// the email-OTP flavor of OTP, not the authenticator-app (TOTP) flavor.
package otp
