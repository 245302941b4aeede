package workers

type Workers struct {
	workers []Worker
}

// NewWorkers bundles the given workers into a single aggregate.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop stops every worker that supports stopping, in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		if s, ok := w.workers[i].(interface{ Stop() }); ok {
			s.Stop()
		}
	}
}
