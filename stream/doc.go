// Package stream defines the contract between a compute block and the
// buffer manager that schedules it.
//
// A scheduler calls Block.Work repeatedly. Each call processes the samples
// that the attached Ports report as available on both sides, then reports
// consumption and production back to the Ports. Work never blocks and
// never loops; zero availability is a normal no-op under backpressure.
//
// Queue is a reference buffer manager for tests, tools and simple hosts.
// Pipe erases the element types of a Queue so that blocks constructed from
// runtime descriptors can be driven with []any values.
package stream
