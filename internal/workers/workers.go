package workers

// Workers is the collection of background processes started by the host.
type Workers struct {
	workers []Worker
}

// NewWorkers bundles the given workers for a single Run call.
func NewWorkers(w ...Worker) *Workers {
	return &Workers{workers: w}
}

// Run starts every worker on its own goroutine.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		go worker.Run()
	}
}
