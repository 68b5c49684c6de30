package block

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/cwbudde/algo-blocks/dtype"
	"github.com/cwbudde/algo-blocks/kernel"
	"github.com/cwbudde/algo-blocks/param"
	"github.com/cwbudde/algo-blocks/stream"
)

// ConstArithmetic applies a fixed operation with a mutable constant to
// every lane of every sample. Input and output share one descriptor.
type ConstArithmetic[T dtype.Element] struct {
	op     kernel.Op
	dt     dtype.DType
	fn     kernel.ConstFn[T]
	impl   string
	k      *param.Cell[T]
	ports  stream.Ports[T, T]
	logger *slog.Logger

	watchMu sync.Mutex
	watches []func()
}

// NewTypedConstArithmetic resolves the kernel for op on T and returns the
// block holding constant. The initial constant is published like any
// later SetConstant.
func NewTypedConstArithmetic[T dtype.Element](op kernel.Op, constant T, opts ...Option) (*ConstArithmetic[T], error) {
	cfg := ApplyOptions(opts...)

	dt, err := dtype.New(dtype.Of[T]().Kind, dtype.Of[T]().Complex, cfg.Dimension)
	if err != nil {
		return nil, err
	}

	fn, impl, err := kernel.ResolveConst[T](op, cfg.kernelOptions()...)
	if err != nil {
		return nil, err
	}
	if err := checkConstant(op, dt, constant); err != nil {
		return nil, err
	}

	b := &ConstArithmetic[T]{
		op:     op,
		dt:     dt,
		fn:     fn,
		impl:   impl,
		k:      param.NewCell(constant),
		logger: cfg.Logger,
	}
	b.k.Set(constant)

	b.logger.Debug("const arithmetic block created",
		"operation", op.String(),
		"type", dt.String(),
		"kernel", impl,
		"constant", constant)

	return b, nil
}

func checkConstant[T dtype.Element](op kernel.Op, dt dtype.DType, k T) error {
	if op == kernel.DivConst && kernel.ZeroDivisor(k) {
		return fmt.Errorf("%w: operation=%s type=%s constant=%v", ErrDivideByZero, op, dt.Scalar(), k)
	}
	return nil
}

// InputType implements stream.Block.
func (b *ConstArithmetic[T]) InputType() dtype.DType { return b.dt }

// OutputType implements stream.Block.
func (b *ConstArithmetic[T]) OutputType() dtype.DType { return b.dt }

// Op returns the configured operation.
func (b *ConstArithmetic[T]) Op() kernel.Op { return b.op }

// Implementation returns the name of the resolved kernel variant.
func (b *ConstArithmetic[T]) Implementation() string { return b.impl }

// Attach implements stream.Attacher.
func (b *ConstArithmetic[T]) Attach(p stream.Ports[T, T]) { b.ports = p }

// Bind implements stream.Binder.
func (b *ConstArithmetic[T]) Bind(capacity int) (stream.Pipe, error) {
	return stream.NewPipe[T, T](b, capacity)
}

// Work implements stream.Block. The constant is read once per call.
func (b *ConstArithmetic[T]) Work() (int, int) {
	if b.ports == nil {
		return 0, 0
	}

	n := b.ports.MinElements()
	if n == 0 {
		return 0, 0
	}

	e := b.dt.Elements(n)
	k := b.k.Get()
	b.fn(b.ports.Output()[:e], b.ports.Input()[:e], k)

	b.ports.Consume(n)
	b.ports.Produce(n)
	return n, n
}

// Constant returns the current constant.
func (b *ConstArithmetic[T]) Constant() T { return b.k.Get() }

// SetConstant stores k and notifies subscribers, even when k equals the
// current constant. A zero divisor for integer X/K is rejected and leaves
// the constant unchanged.
func (b *ConstArithmetic[T]) SetConstant(k T) error {
	if err := checkConstant(b.op, b.dt, k); err != nil {
		return err
	}
	b.k.Set(k)
	return nil
}

// ConstantValue returns the current constant as an any holding a T.
func (b *ConstArithmetic[T]) ConstantValue() any { return b.k.Get() }

// SetConstantValue converts v to T and sets it.
func (b *ConstArithmetic[T]) SetConstantValue(v any) error {
	k, err := dtype.Convert[T](v)
	if err != nil {
		return err
	}
	if err := b.SetConstant(k); err != nil {
		return err
	}

	b.logger.Debug("constant changed", "operation", b.op.String(), "type", b.dt.String(), "constant", k)
	return nil
}

// Subscribe returns a subscription receiving every new constant.
func (b *ConstArithmetic[T]) Subscribe(buffer int) (*param.Subscription[T], error) {
	return b.k.Subscribe(buffer)
}

// Watch calls fn from a separate goroutine with every new constant until
// the returned cancel function is called.
func (b *ConstArithmetic[T]) Watch(buffer int, fn func(any)) (cancel func(), err error) {
	sub, err := b.k.Subscribe(buffer)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case v := <-sub.C:
				fn(v)
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	cancel = func() {
		once.Do(func() {
			sub.Close()
			close(done)
			wg.Wait()
		})
	}

	b.watchMu.Lock()
	b.watches = append(b.watches, cancel)
	b.watchMu.Unlock()
	return cancel, nil
}

// Close stops all watchers and detaches subscribers.
func (b *ConstArithmetic[T]) Close() {
	b.watchMu.Lock()
	watches := b.watches
	b.watches = nil
	b.watchMu.Unlock()

	for _, cancel := range watches {
		cancel()
	}
	b.k.Close()
}
