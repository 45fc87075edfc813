// Package ginkgohook wires a fixture into a Ginkgo suite.
//
//	var emulator = mustFixture()
//	var _ = ginkgohook.Register(emulator)
//
// Suites that need their own BeforeSuite call Setup from inside it instead.
package ginkgohook

import (
	"context"

	"lstack/pkg/fixture"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

// Register declares the suite's BeforeSuite, which starts f and exports the
// endpoint variables. Closing the fixture is deferred to the end of the
// suite. The bool result allows use in a package-level var declaration.
func Register(f *fixture.Fixture) bool {
	return ginkgo.BeforeSuite(func(ctx ginkgo.SpecContext) {
		Setup(ctx, f)
	})
}

// Setup starts f, exports the endpoint variables and schedules Close for the
// end of the enclosing node. Close waits out the shutdown grace period and
// kills an emulator that is still running. It fails the suite when the emulator does not
// come up.
func Setup(ctx context.Context, f *fixture.Fixture) {
	ginkgo.GinkgoHelper()

	ginkgo.DeferCleanup(f.Close)
	gomega.Expect(f.Start(ctx)).To(gomega.Succeed(), "emulator failed to start")
	gomega.Expect(f.ExportEnv()).To(gomega.Succeed())
	ginkgo.GinkgoWriter.Printf("Emulator ready (run %s)\n", f.RunID())
}
