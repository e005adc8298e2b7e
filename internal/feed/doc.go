// Package feed merges a remote RSS feed into a local content manifest.
//
// A sync fetches the feed, normalizes its entries to manifest items, merges
// them under the existing manifest (local entries win on key collision),
// sorts the result newest first, mirrors remote thumbnails to local files
// and writes the manifest back.
//
// Sync is meant for scheduled runs and never fails the caller: network,
// parse and filesystem problems are logged, recorded in the Report, and
// leave the existing manifest as it was.
package feed
