// Package fixture brings up a local cloud emulator for a test run and hands
// its service endpoints to test code.
//
// Typical use from a TestMain:
//
//	var emulator *fixture.Fixture
//
//	func TestMain(m *testing.M) {
//		f, err := fixture.New(fixture.WithServices("s3", "sqs"))
//		if err != nil {
//			fmt.Fprintln(os.Stderr, err)
//			os.Exit(1)
//		}
//		emulator = f
//		os.Exit(f.Run(m))
//	}
//
//	func TestUpload(t *testing.T) {
//		client, err := emulator.S3Client(context.Background())
//		...
//	}
//
// Ginkgo suites can use the ginkgohook subpackage instead.
//
// A Fixture starts at most one emulator. Start may be called from any number
// of goroutines; the first call installs and launches, the rest wait for it.
// Stop is safe to call repeatedly and before Start.
package fixture
