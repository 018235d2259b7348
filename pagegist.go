// Package pagegist extracts readable content from web pages and sends it
// to a summarization backend.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/, openai/).
package pagegist
