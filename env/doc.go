// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

/*
Package env abstracts environment variable access so configuration loading
can be tested without touching the process environment.

	reader := &env.OSReader{}
	path, ok := reader.LookupEnv("REMAP_CONFIG")

Tests inject the generated mock from the mocks sub-package:

	ctrl := gomock.NewController(t)
	reader := mocks.NewMockReader(ctrl)
	reader.EXPECT().LookupEnv("REMAP_LOG_LEVEL").Return("debug", true)
*/
package env
