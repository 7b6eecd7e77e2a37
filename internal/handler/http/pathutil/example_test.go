package pathutil_test

import (
	"fmt"

	"catchup-feed/internal/handler/http/pathutil"
)

// ExampleNormalizePath demonstrates how path normalization works
// to prevent metrics label cardinality explosion.
func ExampleNormalizePath() {
	// Before normalization: Each user ID creates a unique path label.
	// This would cause cardinality explosion in Prometheus metrics.

	// After normalization: All user IDs map to the same template.
	fmt.Println(pathutil.NormalizePath("/api/v1/history/user-1"))
	fmt.Println(pathutil.NormalizePath("/api/v1/history/user-2"))
	fmt.Println(pathutil.NormalizePath("/api/v1/history/user-3"))

	// Output:
	// /api/v1/history/:userID
	// /api/v1/history/:userID
	// /api/v1/history/:userID
}

// ExampleNormalizePath_recommendations demonstrates normalization for recommendation endpoints.
func ExampleNormalizePath_recommendations() {
	fmt.Println(pathutil.NormalizePath("/api/v1/recommendations/user-1"))
	fmt.Println(pathutil.NormalizePath("/api/v1/recommendations/user-1/click"))

	// Output:
	// /api/v1/recommendations/:userID
	// /api/v1/recommendations/:userID/click
}

// ExampleNormalizePath_static demonstrates that static endpoints remain unchanged.
func ExampleNormalizePath_static() {
	fmt.Println(pathutil.NormalizePath("/health"))
	fmt.Println(pathutil.NormalizePath("/metrics"))
	fmt.Println(pathutil.NormalizePath("/api/v1/summarize"))

	// Output:
	// /health
	// /metrics
	// /api/v1/summarize
}

// ExampleNormalizePath_queryParameters demonstrates that query parameters are stripped.
func ExampleNormalizePath_queryParameters() {
	fmt.Println(pathutil.NormalizePath("/api/v1/history/user-1?page=1"))
	fmt.Println(pathutil.NormalizePath("/health?format=json"))

	// Output:
	// /api/v1/history/:userID
	// /health
}

// ExampleNormalizePath_trailingSlash demonstrates that trailing slashes are handled.
func ExampleNormalizePath_trailingSlash() {
	fmt.Println(pathutil.NormalizePath("/api/v1/history/user-1/"))
	fmt.Println(pathutil.NormalizePath("/api/v1/recommendations/user-1/"))

	// Output:
	// /api/v1/history/:userID
	// /api/v1/recommendations/:userID
}

// ExampleGetExpectedCardinality demonstrates how to check expected metric cardinality.
func ExampleGetExpectedCardinality() {
	cardinality := pathutil.GetExpectedCardinality()
	fmt.Printf("Expected unique path labels: ~%d\n", cardinality)

	// Output is approximate, so we just demonstrate the usage
	// In real output: Expected unique path labels: ~12
}
