// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// NewEvalID generates a correlation ID for one evaluation call, suitable
// for threading through logs around a CheckAction/Check invocation. ULIDs
// are lexicographically sortable by creation time, which keeps log lines
// for a burst of concurrent evaluations orderable without a separate
// sequence counter.
func NewEvalID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
