// Package buffer provides a reusable linear FIFO of typed elements and a
// pool for allocation-friendly streaming. Readers and writers address the
// buffer through cursor slices (Readable, Writable) and advance the cursors
// explicitly with Consume and Commit, which is the shape a streaming block
// expects from its buffer manager.
package buffer
