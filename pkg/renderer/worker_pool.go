package renderer

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RowTask represents a row rendering task for the worker pool
type RowTask struct {
	Row  int   // Image row, 0 is the top
	Seed int64 // Seed for this row's random generator
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Row   int
	Stats RenderStats
}

// RowRenderer renders one row task
type RowRenderer func(task RowTask) (RenderStats, error)

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	numWorkers  int
	render      RowRenderer
	group       errgroup.Group
}

// NewWorkerPool creates a worker pool sized for numTasks tasks.
// numWorkers <= 0 uses one worker per CPU.
func NewWorkerPool(numWorkers, numTasks int, render RowRenderer) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		taskQueue:   make(chan RowTask, numTasks),   // Buffer for all tasks
		resultQueue: make(chan RowResult, numTasks), // Buffer for all results
		numWorkers:  numWorkers,
		render:      render,
	}
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		wp.group.Go(wp.run)
	}
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// Stop closes the task queue, waits for the workers to drain it and closes
// the result queue. Returns the first error reported by any worker.
func (wp *WorkerPool) Stop() error {
	close(wp.taskQueue)
	err := wp.group.Wait()
	close(wp.resultQueue)
	return err
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop. A failing worker keeps draining the queue
// so the producer never blocks.
func (wp *WorkerPool) run() error {
	var firstErr error
	for task := range wp.taskQueue {
		if firstErr != nil {
			continue
		}
		stats, err := wp.render(task)
		if err != nil {
			firstErr = err
			continue
		}
		wp.resultQueue <- RowResult{Row: task.Row, Stats: stats}
	}
	return firstErr
}

// RowSeed derives an independent seed for a row with a splitmix64 step, so
// results do not depend on which worker renders the row.
func RowSeed(seed int64, row int) int64 {
	z := uint64(seed) + uint64(row+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}
