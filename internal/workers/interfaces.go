package workers

// Worker is a long-running background process owned by the host. Run
// blocks until the worker's context is cancelled.
type Worker interface {
	Run()
}
