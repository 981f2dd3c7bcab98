// Package csvfeed fetches a CSV document over HTTP and parses it into typed records
//
// Design choices:
// - One GET per run, body read fully into memory. Feeds are small snapshot exports.
// - BOM-aware decoding so a UTF-8 or UTF-16 byte order mark never lands in a header name.
// - Lines starting with # are comments, blank lines are skipped, the first remaining line is the header.
// - A row whose width differs from the header fails the whole parse; no partial batches.
// - Types are inferred per column over every non-empty cell: int, float, bool, datetime, then string.
package csvfeed
