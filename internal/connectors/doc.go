// Package connectors provides implementations of the InputScanner
// interface for document sources. The filesystem connector watches a
// local input directory; remote sources would live alongside it.
package connectors
