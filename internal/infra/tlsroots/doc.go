// Package tlsroots builds the trusted root set for outbound HTTPS.
//
// The system pool is always included; a PEM bundle named by
// transport.ca_file is added on top, which lets the CLI run behind an
// intercepting proxy or against a test upstream with its own CA.
package tlsroots
