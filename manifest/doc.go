// SPDX-FileCopyrightText: Copyright 2026 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package manifest decodes remap programs written as YAML expression trees.

A manifest lists top-level expressions under program. Every node is a
mapping with exactly one key naming its kind:

	name: mask-client
	program:
	  - assign:
	      path: .client.subnet
	      value:
	        call:
	          function: ip_subnet
	          args:
	            - value: {path: .client.ip}
	            - keyword: subnet
	              value: {literal: /24}
	  - call:
	      function: only_fields
	      args:
	        - value: {path: .client}
	        - value: {path: .message}

Supported nodes are literal, noop, path, variable, not, block, assign,
if, op and call. Documents are validated against an embedded JSON schema
before decoding. Errors raised while building nodes, including function
compile errors, carry the line and column of the offending node.
*/
package manifest
