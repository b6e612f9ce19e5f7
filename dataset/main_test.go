// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain checks that fetching URL sources leaves no HTTP client
// goroutines behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
