// Package workers bundles the client's background processes, such as the
// collection refresher and the trash scheduler, behind one start/stop
// surface.
package workers

// Worker is a background process with a non-blocking or self-managing Run.
// A worker that also implements Stop() is shut down by [Workers.Stop] in
// reverse start order.
type Worker interface {
	Run()
}
