// Package threadbook extracts structured data from HTML-rendered
// vBulletin forum threads and prepares cleaned text for ebook
// generation. It parses a thread's markup into typed Post, Author and
// Thread records, resolves the forum's ambiguous timestamp renderings,
// and strips post markup down to clean text while preserving quotes,
// spoilers and code blocks.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, epub/).
package threadbook
