// Package log provides leveled structured logging based on [log/slog].
//
// A [Logger] is created with [Make] and configured with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
// Messages take typed attributes only:
//
//	logger.Info("parsed", slog.Int("count", n))
//
// Every level has a context-aware variant (InfoContext, ...). The variants
// without a context use [DefaultContextProvider].
//
// Besides the slog levels the package defines [LevelTrace], used by the
// library packages for per-node diagnostics.
//
// Package-level functions write to a default logger on standard error that
// the command line configures once with [Config].
package log
