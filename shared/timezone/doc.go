// Package timezone centralizes time handling in the application timezone
// configured via APP_TIMEZONE. All timestamps persisted or formatted by the
// service go through this package so that stored and rendered times agree.
package timezone
