// Package shutdown coordinates graceful process shutdown.
//
// A Handler waits for SIGINT/SIGTERM (or context cancellation) and then runs
// the registered hooks in reverse registration order under a shared timeout:
//
//	h := shutdown.NewHandler(10*time.Second, logger)
//	h.OnShutdown("redis listener", srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown
