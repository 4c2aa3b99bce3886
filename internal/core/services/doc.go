// Package services implements the driving Pipeline port. The
// PipelineService orchestrates chunking, embedding, extraction and
// graph maintenance through the driven ports, serialising writers
// with a single mutex.
package services
