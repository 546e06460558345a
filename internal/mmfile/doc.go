// Package mmfile maps plugin files into memory for decoding.
package mmfile
