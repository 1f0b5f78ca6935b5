// Package middleware provides ports.HistoryStore decorators, such as masking sensitive
// arguments before a dispatch record is persisted.
package middleware
