// Package mmfile provides platform-specific helpers for memory-mapping EVIO
// files read-only. On unix the file is mapped with golang.org/x/sys/unix; on
// other platforms it is read fully into memory.
package mmfile
