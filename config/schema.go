// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	_ "embed"

	"github.com/stacklok/remap/internal/schema"
)

//go:embed data/config.schema.json
var configSchema []byte

const schemaErrPrefix = "config schema validation failed"

func validateDocument(doc map[string]any) error {
	return schema.ValidateValue(configSchema, doc, schemaErrPrefix)
}

func validateStruct(c *Config) error {
	return schema.ValidateValue(configSchema, c, schemaErrPrefix)
}
