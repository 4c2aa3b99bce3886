// Package driving provides interfaces for presentation adapters (primary/inbound ports).
package driving
