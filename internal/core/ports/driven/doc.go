// Package driven defines the outbound ports the extraction core depends on:
// the document-database page fetcher, the state store and the message sink.
// Adapters implement these interfaces; the core never imports an adapter.
package driven
