// Package firestore adapts the Cloud Firestore client to the extraction
// core's page-fetch port. It owns credential handling, error translation,
// rate limiting and retry of transient failures; the core only ever sees
// ordered pages of documents or terminal errors.
package firestore
