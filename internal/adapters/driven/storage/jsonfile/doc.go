// Package jsonfile implements the StateStore on whole-file JSON mappings.
//
// Each persisted mapping lives in its own JSON object file inside the
// data directory; every load reads all files and every persist rewrites
// all files. Writes go to a temp file and are renamed into place so a
// failed persist never leaves a mapping half-written.
package jsonfile
