// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package config loads the remap runner configuration.

Configuration is a YAML document validated against an embedded JSON
schema:

	logging:
	  format: json
	  level: info
	errors:
	  policy: annotate
	  field: remap_error
	functions:
	  disabled: [cel]
	cel:
	  max_expression_length: 10000
	  cost_limit: 1000000
	batch:
	  concurrency: 4

[Load] looks for the file named by REMAP_CONFIG, then for
remap/config.yaml in the XDG configuration directories, and falls back to
[Default] when neither exists. REMAP_LOG_LEVEL, REMAP_LOG_FORMAT and
REMAP_ERROR_POLICY override the corresponding file settings.
*/
package config
