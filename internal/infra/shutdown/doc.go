// Package shutdown ties a command's lifetime to process signals.
//
// The first SIGINT or SIGTERM cancels the context handed to the command so
// in-flight downloads stop; registered hooks then run with a timeout.
//
//	h := shutdown.NewHandler(5 * time.Second)
//	ctx, stop := h.Context(parent)
//	defer stop()
//	h.OnShutdown(server.Shutdown)
package shutdown
