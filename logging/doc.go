// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package logging builds the [log/slog.Logger] used by the transform runner
and anything embedding it.

# Defaults

  - Format: JSON ([FormatJSON]) via [log/slog.JSONHandler]
  - Level: INFO ([log/slog.LevelInfo])
  - Output: [os.Stderr]
  - Timestamps: [time.RFC3339]

# Configuration

Options override the defaults. Configuration files carry the format and
level as strings, which [ParseFormat] and [ParseLevel] convert:

	format, err := logging.ParseFormat(cfg.Logging.Format)
	level, err := logging.ParseLevel(cfg.Logging.Level)
	logger := logging.New(logging.WithFormat(format), logging.WithLevel(level))

Pass a [log/slog.LevelVar] to change the level at runtime.

# Testing

Inject a buffer to capture output, or use [Discard]:

	var buf bytes.Buffer
	logger := logging.New(logging.WithOutput(&buf))
*/
package logging
