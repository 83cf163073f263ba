// Package askdocs answers natural language questions about a deployed
// documentation site. It crawls the site, extracts page content as
// markdown, splits it into overlapping chunks, embeds the chunks into a
// vector collection, and serves grounded answers by retrieving the most
// similar chunks and conditioning a language model on them.
//
// This package contains domain types and capability interfaces following
// Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., chromem/,
// pgvector/, gemini/); the ingestion and query pipelines live in
// ingest/ and query/.
package askdocs
