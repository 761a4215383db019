// Package services implements the driving port interfaces.
// Services contain the core business logic of the ingestion and
// context pipeline and orchestrate calls to driven ports (adapters).
package services
