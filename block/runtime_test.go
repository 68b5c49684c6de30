package block

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-blocks/dtype"
	"github.com/cwbudde/algo-blocks/kernel"
	"github.com/cwbudde/algo-blocks/stream"
)

func TestNewConstArithmeticCoversAllTypes(t *testing.T) {
	count := 0
	for _, kind := range dtype.Kinds {
		for _, isComplex := range []bool{false, true} {
			dt := dtype.DType{Kind: kind, Complex: isComplex, Dimension: 1}
			for _, op := range kernel.ConstOps {
				t.Run(dt.String()+"/"+op.String(), func(t *testing.T) {
					b, err := NewConstArithmetic(dt, op, 2)
					if err != nil {
						t.Fatal(err)
					}
					defer b.Close()

					if b.InputType() != dt || b.OutputType() != dt {
						t.Fatalf("types = %s -> %s, want %s", b.InputType(), b.OutputType(), dt)
					}
					if b.Op() != op {
						t.Fatalf("Op() = %s, want %s", b.Op(), op)
					}
					assertConstantTwo(t, b.ConstantValue())
				})
				count++
			}
		}
	}
	if count != 120 {
		t.Fatalf("covered %d specializations, want 120", count)
	}
}

func assertConstantTwo(t *testing.T, v any) {
	t.Helper()
	got, err := dtype.Convert[complex128](v)
	if err != nil {
		t.Fatalf("constant %v (%T): %v", v, v, err)
	}
	if got != 2 {
		t.Fatalf("constant = %v, want 2", got)
	}
}

func TestNewConstArithmeticPipe(t *testing.T) {
	dt := dtype.MustParse("int16")
	b, err := NewConstArithmetic(dt, kernel.ConstSubX, "100")
	if err != nil {
		t.Fatal(err)
	}

	p, err := stream.Bind(b, 8)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Release()

	if _, err := p.Push([]any{10, 20, 30}); err != nil {
		t.Fatal(err)
	}
	p.Step()

	got := p.Pull()
	want := []int16{90, 80, 70}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v, want %d", i, got[i], want[i])
		}
	}
}

func TestNewConstArithmeticErrors(t *testing.T) {
	tests := []struct {
		name     string
		dt       dtype.DType
		op       kernel.Op
		constant any
		want     error
	}{
		{"angle op", dtype.ComplexOf(dtype.Float32), kernel.Angle, 0, kernel.ErrUnsupported},
		{"invalid op", dtype.RealOf(dtype.Float32), kernel.Op(200), 0, kernel.ErrUnsupported},
		{"invalid type", dtype.DType{}, kernel.AddConst, 0, kernel.ErrUnsupported},
		{"zero dimension", dtype.DType{Kind: dtype.Int8}, kernel.AddConst, 0, kernel.ErrUnsupported},
		{"conversion", dtype.RealOf(dtype.Uint8), kernel.AddConst, -1, dtype.ErrConversion},
		{"imaginary to real", dtype.RealOf(dtype.Float64), kernel.AddConst, 1 + 2i, dtype.ErrConversion},
		{"divide by zero", dtype.ComplexOf(dtype.Int16), kernel.DivConst, 0, ErrDivideByZero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewConstArithmetic(tt.dt, tt.op, tt.constant)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
			if b != nil {
				t.Fatalf("block constructed despite error: %T", b)
			}
		})
	}
}

func TestNewConstArithmeticDimension(t *testing.T) {
	dt := dtype.MustParse("float32x3")
	b, err := NewConstArithmetic(dt, kernel.MulConst, 2, WithDimension(7))
	if err != nil {
		t.Fatal(err)
	}
	if got := b.InputType(); got != dt {
		t.Fatalf("InputType() = %s, want %s", got, dt)
	}
}

func TestNewAngle(t *testing.T) {
	supported := []dtype.Kind{dtype.Float64, dtype.Float32, dtype.Int64, dtype.Int32, dtype.Int16, dtype.Int8}
	for _, kind := range supported {
		in := dtype.ComplexOf(kind)
		t.Run(in.String(), func(t *testing.T) {
			b, err := NewAngle(in)
			if err != nil {
				t.Fatal(err)
			}
			if got := b.OutputType(); got != dtype.RealOf(kind) {
				t.Fatalf("OutputType() = %s, want %s", got, dtype.RealOf(kind))
			}
			if b.Op() != kernel.Angle {
				t.Fatalf("Op() = %s, want angle", b.Op())
			}
		})
	}

	unsupported := []dtype.DType{
		dtype.ComplexOf(dtype.Uint8),
		dtype.ComplexOf(dtype.Uint64),
		dtype.RealOf(dtype.Float32),
		{},
	}
	for _, dt := range unsupported {
		t.Run("reject "+dt.String(), func(t *testing.T) {
			b, err := NewAngle(dt)
			if !errors.Is(err, kernel.ErrUnsupported) {
				t.Fatalf("got %v, want ErrUnsupported", err)
			}
			if b != nil {
				t.Fatal("block constructed despite error")
			}
		})
	}
}

func TestNewAnglePipe(t *testing.T) {
	b, err := NewAngle(dtype.MustParse("complex_float32"))
	if err != nil {
		t.Fatal(err)
	}
	p, err := stream.Bind(b, 4)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Release()

	if _, err := p.Push([]any{complex(1, 0), "0+1i"}); err != nil {
		t.Fatal(err)
	}
	p.Step()

	got := p.Pull()
	if got[0] != float32(0) {
		t.Fatalf("angle(1) = %v, want 0", got[0])
	}
	if got[1] != float32(1.5707964) {
		t.Fatalf("angle(i) = %v, want pi/2", got[1])
	}
}

func BenchmarkConstArithmeticWork(b *testing.B) {
	blk, err := NewTypedConstArithmetic[float32](kernel.MulConst, 0.5)
	if err != nil {
		b.Fatal(err)
	}
	q := stream.NewQueueFor[float32, float32](blk, 1024)
	defer q.Release()
	if err := stream.Attach[float32, float32](blk, q); err != nil {
		b.Fatal(err)
	}

	src := make([]float32, 1024)
	dst := make([]float32, 1024)

	b.SetBytes(1024 * 4)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		q.Write(src)
		blk.Work()
		q.Read(dst)
	}
}
