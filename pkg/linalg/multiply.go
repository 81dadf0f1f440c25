package linalg

import (
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultParallelThreshold is the per-worker cost (multiply-accumulate steps)
// above which a product is computed in parallel.
const DefaultParallelThreshold int64 = 1 << 15

// Multiplication modes reported to a MulObserver.
const (
	ModeSequential = "sequential"
	ModeParallel   = "parallel"
)

// MulObserver receives one notification per completed matrix product.
type MulObserver interface {
	ObserveMul(mode string, partitions int, duration time.Duration)
}

// Multiplier computes matrix products, choosing between the sequential
// kernel and a bounded pool of workers.
//
// A Multiplier is immutable and safe for concurrent use.
type Multiplier struct {
	threshold int64
	workers   int
	observer  MulObserver
}

// MultiplierOption configures a Multiplier.
type MultiplierOption func(*Multiplier)

// WithThreshold sets the per-worker cost threshold. Values <= 0 force the
// parallel path whenever more than one worker is available.
func WithThreshold(threshold int64) MultiplierOption {
	return func(mp *Multiplier) {
		mp.threshold = threshold
	}
}

// WithWorkers sets the worker pool size. Values <= 0 select runtime.NumCPU().
func WithWorkers(workers int) MultiplierOption {
	return func(mp *Multiplier) {
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		mp.workers = workers
	}
}

// WithObserver registers an observer notified after every product.
func WithObserver(observer MulObserver) MultiplierOption {
	return func(mp *Multiplier) {
		mp.observer = observer
	}
}

// NewMultiplier creates a Multiplier sized to the available cores.
func NewMultiplier(opts ...MultiplierOption) *Multiplier {
	mp := &Multiplier{
		threshold: DefaultParallelThreshold,
		workers:   runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(mp)
	}
	return mp
}

var defaultMultiplier atomic.Pointer[Multiplier]

func init() {
	defaultMultiplier.Store(NewMultiplier())
}

// DefaultMultiplier returns the Multiplier used by Matrix.Mul.
func DefaultMultiplier() *Multiplier {
	return defaultMultiplier.Load()
}

// SetDefaultMultiplier replaces the Multiplier used by Matrix.Mul.
func SetDefaultMultiplier(mp *Multiplier) {
	if mp != nil {
		defaultMultiplier.Store(mp)
	}
}

// Workers returns the worker pool size.
func (mp *Multiplier) Workers() int { return mp.workers }

// Threshold returns the per-worker cost threshold.
func (mp *Multiplier) Threshold() int64 { return mp.threshold }

// Mul returns a·b. The product is computed in parallel when its estimated
// cost divided by the number of workers exceeds the threshold.
func (mp *Multiplier) Mul(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, &ShapeError{Op: "mul", Left: a.Shape(), Right: b.Shape()}
	}
	if mp.workers > 1 && mulCost(a, b)/int64(mp.workers) > mp.threshold {
		return mp.MulParallel(a, b)
	}
	return mp.MulSequential(a, b)
}

// MulSequential computes a·b on the calling goroutine.
func (mp *Multiplier) MulSequential(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, &ShapeError{Op: "mul", Left: a.Shape(), Right: b.Shape()}
	}
	start := time.Now()
	out := Zeros(a.rows, b.cols)
	fillBlock(out, a, b, block{row0: 0, row1: a.rows, col0: 0, col1: b.cols})
	mp.observe(ModeSequential, 1, start)
	return out, nil
}

// MulParallel computes a·b by splitting the output into disjoint blocks and
// evaluating them on at most Workers goroutines. It returns once every block
// is complete.
func (mp *Multiplier) MulParallel(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, &ShapeError{Op: "mul", Left: a.Shape(), Right: b.Shape()}
	}
	start := time.Now()
	out := Zeros(a.rows, b.cols)
	blocks := partition(a.rows, b.cols, mp.workers)

	var g errgroup.Group
	g.SetLimit(mp.workers)
	for _, blk := range blocks {
		g.Go(func() error {
			fillBlock(out, a, b, blk)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	mp.observe(ModeParallel, len(blocks), start)
	return out, nil
}

func (mp *Multiplier) observe(mode string, partitions int, start time.Time) {
	if mp.observer != nil {
		mp.observer.ObserveMul(mode, partitions, time.Since(start))
	}
}

// block is a half-open rectangle [row0,row1)×[col0,col1) of the output.
type block struct {
	row0, row1 int
	col0, col1 int
}

// partition splits a rows×cols output into at least tasks disjoint blocks of
// roughly equal cell count. When a single row already holds more cells than
// the per-task budget, rows are cut into column ranges; otherwise whole rows
// are grouped.
func partition(rows, cols, tasks int) []block {
	if tasks < 1 {
		tasks = 1
	}
	budget := (rows*cols + tasks - 1) / tasks
	if budget < 1 {
		budget = 1
	}

	var blocks []block
	if cols > budget {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c += budget {
				blocks = append(blocks, block{row0: r, row1: r + 1, col0: c, col1: min(c+budget, cols)})
			}
		}
		return blocks
	}

	rowsPerTask := budget / cols
	for r := 0; r < rows; r += rowsPerTask {
		blocks = append(blocks, block{row0: r, row1: min(r+rowsPerTask, rows), col0: 0, col1: cols})
	}
	return blocks
}

// fillBlock writes the cells of blk into out. Blocks never overlap, so
// concurrent calls on distinct blocks need no synchronization.
func fillBlock(out, a, b *Matrix, blk block) {
	for i := blk.row0; i < blk.row1; i++ {
		for j := blk.col0; j < blk.col1; j++ {
			out.cells[i*out.cols+j] = dot(a, b, i, j)
		}
	}
}

// dot accumulates row i of a against column j of b.
func dot(a, b *Matrix, i, j int) Complex {
	var re, im float32
	row := a.cells[i*a.cols : (i+1)*a.cols]
	for k, x := range row {
		y := b.cells[k*b.cols+j]
		re += x.Re*y.Re - x.Im*y.Im
		im += x.Re*y.Im + x.Im*y.Re
	}
	return Complex{Re: re, Im: im}
}

func mulCost(a, b *Matrix) int64 {
	return int64(a.rows) * int64(a.cols) * int64(b.cols)
}
