// SPDX-License-Identifier: Apache-2.0

//go:build integration

package policy_test

import (
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/vaultgate/iampolicy/internal/policy/jsonproj"
	"github.com/vaultgate/iampolicy/internal/policy/model"
)

// Exercises spec.md §5's concurrency claim: once parsed, a Policy and its
// Context are immutable and support unlimited concurrent read-only
// evaluation with no shared mutable state.
var _ = Describe("Concurrent policy evaluation", func() {
	const goroutines = 200

	It("produces identical, contamination-free decisions across concurrent callers", func() {
		pol, err := jsonproj.Parse([]byte(`{
			"Statement": [
				{"Effect":"Allow","Action":"*","Resource":"*"},
				{"Effect":"Deny","Action":"s3:DeleteBucket","Resource":"arn:aws:s3:::sensitive"}
			]
		}`))
		Expect(err).NotTo(HaveOccurred())

		ctx, err := jsonproj.ParseContext([]byte(`{"global":{"aws:PrincipalTag/team":["infra"]}}`))
		Expect(err).NotTo(HaveOccurred())

		resource, err := model.ParseARN("arn:aws:s3:::sensitive")
		Expect(err).NotTo(HaveOccurred())

		var wg sync.WaitGroup
		results := make([]string, goroutines)
		errsOut := make([]error, goroutines)

		for i := range goroutines {
			wg.Add(1)
			go func(idx int) {
				defer GinkgoRecover()
				defer wg.Done()

				action, parseErr := model.ParseAction(fmt.Sprintf("s3:%s", []string{"DeleteBucket", "GetObject"}[idx%2]))
				if parseErr != nil {
					errsOut[idx] = parseErr
					return
				}

				result, evalErr := pol.CheckAction(ctx, action, resource)
				if evalErr != nil {
					errsOut[idx] = evalErr
					return
				}
				results[idx] = result.String()
			}(i)
		}
		wg.Wait()

		for i, err := range errsOut {
			Expect(err).NotTo(HaveOccurred(), fmt.Sprintf("goroutine %d", i))
		}
		for i, r := range results {
			if i%2 == 0 {
				Expect(r).To(Equal("Deny"), fmt.Sprintf("goroutine %d (DeleteBucket)", i))
			} else {
				Expect(r).To(Equal("Allow"), fmt.Sprintf("goroutine %d (GetObject)", i))
			}
		}
	})

	It("is idempotent: repeated checks with identical inputs return identical output", func() {
		pol, err := jsonproj.Parse([]byte(`{
			"Statement": {"Effect":"Allow","Action":"route53:GetChange","Resource":"arn:aws:route53:::change/*"}
		}`))
		Expect(err).NotTo(HaveOccurred())

		ctx, err := jsonproj.ParseContext([]byte(`{}`))
		Expect(err).NotTo(HaveOccurred())
		action, err := model.ParseAction("route53:GetChange")
		Expect(err).NotTo(HaveOccurred())
		resource, err := model.ParseARN("arn:aws:route53:::change/Foo")
		Expect(err).NotTo(HaveOccurred())

		first, err := pol.CheckAction(ctx, action, resource)
		Expect(err).NotTo(HaveOccurred())

		for i := 0; i < 50; i++ {
			again, err := pol.CheckAction(ctx, action, resource)
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(Equal(first))
		}
	})
})
