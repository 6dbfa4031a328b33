// Package app is the composition root for albumfeed.
//
// It loads configuration (dotenv file, TOML file, then ALBUMFEED_* variables),
// builds the logger, the rate-limited HTTP client and the cached album
// repository, and hands them to one of two front ends:
//
//   - Run starts the Bubble Tea interface. Logs go to the configured log file
//     because the terminal belongs to the UI.
//   - Serve exposes the repository as a JSON API and logs to stderr. It shuts
//     the server down gracefully when the context is cancelled.
//
// Usage:
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{}); err != nil {
//		log.Fatalf("albumfeed: %v", err)
//	}
package app
