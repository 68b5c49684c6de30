package stream

import (
	"github.com/cwbudde/algo-blocks/buffer"
	"github.com/cwbudde/algo-blocks/dtype"
)

// Queue is a reference buffer manager: one input buffer filled by the
// caller and one bounded output buffer drained by the caller. A full
// output buffer throttles the attached block.
//
// Queue implements Ports[In, Out]. It is not safe for concurrent use.
type Queue[In, Out any] struct {
	in       *buffer.Buffer[In]
	out      *buffer.Buffer[Out]
	inDim    int
	outDim   int
	released bool
}

// NewQueue returns a queue holding up to capacity samples on each side.
// inDim and outDim are the lanes per sample (DType.Dimension).
func NewQueue[In, Out any](capacity, inDim, outDim int) *Queue[In, Out] {
	if inDim < 1 {
		inDim = 1
	}
	if outDim < 1 {
		outDim = 1
	}
	return &Queue[In, Out]{
		in:     poolFor[In]().Get(capacity * inDim),
		out:    poolFor[Out]().Get(capacity * outDim),
		inDim:  inDim,
		outDim: outDim,
	}
}

// NewQueueFor returns a queue sized for b's descriptors.
func NewQueueFor[In, Out dtype.Element](b Block, capacity int) *Queue[In, Out] {
	return NewQueue[In, Out](capacity, b.InputType().Dimension, b.OutputType().Dimension)
}

// MinElements implements Ports.
func (q *Queue[In, Out]) MinElements() int {
	return min(q.in.Len()/q.inDim, q.out.Free()/q.outDim)
}

// Input implements Ports.
func (q *Queue[In, Out]) Input() []In { return q.in.Readable() }

// Output implements Ports.
func (q *Queue[In, Out]) Output() []Out { return q.out.Writable() }

// Consume implements Ports.
func (q *Queue[In, Out]) Consume(samples int) { q.in.Consume(samples * q.inDim) }

// Produce implements Ports.
func (q *Queue[In, Out]) Produce(samples int) { q.out.Commit(samples * q.outDim) }

// Write appends whole samples from elems and returns the number of
// elements accepted. A trailing partial sample is never accepted.
func (q *Queue[In, Out]) Write(elems []In) int {
	room := (q.in.Free() / q.inDim) * q.inDim
	n := min(len(elems)/q.inDim*q.inDim, room)
	return q.in.Write(elems[:n])
}

// Read moves up to len(dst) produced elements into dst.
func (q *Queue[In, Out]) Read(dst []Out) int {
	return q.out.Read(dst)
}

// Drain returns a copy of every produced element and empties the output.
func (q *Queue[In, Out]) Drain() []Out {
	out := make([]Out, q.out.Len())
	q.out.Read(out)
	return out
}

// Pending returns the produced samples not yet read.
func (q *Queue[In, Out]) Pending() int { return q.out.Len() / q.outDim }

// Backlog returns the written samples not yet consumed.
func (q *Queue[In, Out]) Backlog() int { return q.in.Len() / q.inDim }

// Free returns how many more input samples can be written.
func (q *Queue[In, Out]) Free() int { return q.in.Free() / q.inDim }

// Release returns the buffers to their pools. The queue must not be used
// afterwards.
func (q *Queue[In, Out]) Release() {
	if q.released {
		return
	}
	q.released = true
	poolFor[In]().Put(q.in)
	poolFor[Out]().Put(q.out)
	q.in, q.out = nil, nil
}
