// Package constants holds string values shared across layers.
package constants

const (
	// PubSubProviderLocal pushes events to a local HTTP endpoint.
	PubSubProviderLocal = "local"
	// PubSubProviderGoogle publishes events to Google Cloud Pub/Sub.
	PubSubProviderGoogle = "google"

	// CategoryAll means no category filter.
	CategoryAll = "SEMUA"
)
