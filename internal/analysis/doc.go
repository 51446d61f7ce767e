// Package analysis submits recorded answers to the remote scoring service
// and decodes the returned confidence scores.
package analysis
