// Package logging provides structured logging for roster.
//
// # Overview
//
// Logging package wraps Zap with:
//   - Custom Trace level (-2, below Debug)
//   - Output to stderr, so command output on stdout stays clean
//   - Context field injection (session.id, command)
//   - Redaction of personal data (email addresses, phone numbers)
//
// # Usage
//
//	cfg, err := logging.FromSettings("info", "console")
//	if err != nil {
//	    return err
//	}
//	logger, err := logging.NewLogger(cfg)
//	if err != nil {
//	    return err
//	}
//	defer logger.Sync()
//
//	ctx = logging.WithSessionID(ctx, logging.NewSessionID())
//	logger.Info(ctx, "loaded records", zap.Int("count", n))
//
// # Redaction
//
// Fields named email or phone are always replaced with [REDACTED]. String
// values and messages are also scanned for email-shaped text. Prefer not
// logging contact details at all; redaction is the second line.
//
// # Testing
//
//	tl := logging.NewTestLogger()
//	tl.Info(ctx, "saved records", zap.Int("count", 3))
//	tl.AssertLogged(t, zapcore.InfoLevel, "saved records")
//	tl.AssertNoPII(t)
package logging
