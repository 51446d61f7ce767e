// Package questions serves the embedded interview question banks. Banks are
// JSON files compiled into the binary, one per interview topic, loaded once
// and cached for the life of the process.
package questions
