// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package schema validates JSON documents against embedded JSON schemas and
// reports every violation as a single numbered error.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidDocument is wrapped by every validation failure.
var ErrInvalidDocument = errors.New("document does not match schema")

// Validate validates the JSON document data against schemaData. Violations
// are joined into one error prefixed with errPrefix.
func Validate(schemaData, data []byte, errPrefix string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errPrefix, err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return FormatNumberedErrors(errPrefix, msgs)
}

// ValidateValue marshals doc to JSON and validates it against schemaData.
func ValidateValue(schemaData []byte, doc any, errPrefix string) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: failed to serialize document: %w", errPrefix, err)
	}
	return Validate(schemaData, data, errPrefix)
}

// FormatNumberedErrors formats a list of messages as a single error with a
// numbered list. It returns nil for an empty list.
func FormatNumberedErrors(prefix string, msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	if len(msgs) == 1 {
		return fmt.Errorf("%w: %s: %s", ErrInvalidDocument, prefix, msgs[0])
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s with %d errors:\n", prefix, len(msgs))
	for i, msg := range msgs {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, msg)
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.TrimSuffix(b.String(), "\n"))
}
