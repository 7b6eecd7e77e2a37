package pathutil

import (
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		// History routes with user IDs (should be normalized)
		{
			name:     "history for user-1",
			path:     "/api/v1/history/user-1",
			expected: "/api/v1/history/:userID",
		},
		{
			name:     "history with trailing slash",
			path:     "/api/v1/history/user-1/",
			expected: "/api/v1/history/:userID",
		},
		{
			name:     "history with query params",
			path:     "/api/v1/history/user-1?page=2&perPage=20",
			expected: "/api/v1/history/:userID",
		},

		// Recommendation routes with user IDs (should be normalized)
		{
			name:     "recommendations for user",
			path:     "/api/v1/recommendations/user-42",
			expected: "/api/v1/recommendations/:userID",
		},
		{
			name:     "recommendation click",
			path:     "/api/v1/recommendations/user-42/click",
			expected: "/api/v1/recommendations/:userID/click",
		},

		// Static endpoints (should remain unchanged)
		{
			name:     "summarize endpoint",
			path:     "/api/v1/summarize",
			expected: "/api/v1/summarize",
		},
		{
			name:     "feedback endpoint",
			path:     "/api/v1/feedback",
			expected: "/api/v1/feedback",
		},
		{
			name:     "health endpoint",
			path:     "/health",
			expected: "/health",
		},
		{
			name:     "health with query params",
			path:     "/health?format=json",
			expected: "/health",
		},
		{
			name:     "metrics endpoint",
			path:     "/metrics",
			expected: "/metrics",
		},
		{
			name:     "ready endpoint",
			path:     "/ready",
			expected: "/ready",
		},
		{
			name:     "live endpoint",
			path:     "/live",
			expected: "/live",
		},

		// Unknown/unmatched paths (should remain unchanged)
		{
			name:     "unknown path with segment",
			path:     "/unknown/path/123",
			expected: "/unknown/path/123",
		},

		// Edge cases
		{
			name:     "root path",
			path:     "/",
			expected: "/",
		},
		{
			name:     "empty path",
			path:     "",
			expected: "",
		},
		{
			name:     "path with only query params",
			path:     "/?page=1",
			expected: "/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizePath(tt.path)
			if result != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, result, tt.expected)
			}
		})
	}
}

func TestNormalizePath_Cardinality(t *testing.T) {
	paths := []string{
		"/api/v1/history/user-1",
		"/api/v1/history/user-2",
		"/api/v1/history/user-123",
		"/api/v1/history/user-456",
	}

	expected := "/api/v1/history/:userID"
	for _, path := range paths {
		result := NormalizePath(path)
		if result != expected {
			t.Errorf("NormalizePath(%q) = %q, want %q (cardinality check failed)", path, result, expected)
		}
	}

	uniqueResults := make(map[string]bool)
	for _, path := range paths {
		uniqueResults[NormalizePath(path)] = true
	}

	if len(uniqueResults) != 1 {
		t.Errorf("Expected cardinality of 1, got %d unique paths: %v", len(uniqueResults), uniqueResults)
	}
}

func TestNormalizePath_TrailingSlash(t *testing.T) {
	tests := []struct {
		path1    string
		path2    string
		expected string
	}{
		{"/api/v1/history/user-1", "/api/v1/history/user-1/", "/api/v1/history/:userID"},
		{"/api/v1/recommendations/user-1", "/api/v1/recommendations/user-1/", "/api/v1/recommendations/:userID"},
		{"/health", "/health/", "/health"},
	}

	for _, tt := range tests {
		result1 := NormalizePath(tt.path1)
		result2 := NormalizePath(tt.path2)

		if result1 != tt.expected {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.path1, result1, tt.expected)
		}
		if result2 != tt.expected {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.path2, result2, tt.expected)
		}
		if result1 != result2 {
			t.Errorf("Trailing slash inconsistency: %q vs %q", result1, result2)
		}
	}
}

func TestNormalizePath_QueryParameters(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/api/v1/history/user-1?page=1", "/api/v1/history/:userID"},
		{"/api/v1/history/user-1?page=1&perPage=10", "/api/v1/history/:userID"},
		{"/api/v1/summarize?debug=1", "/api/v1/summarize"},
		{"/health?format=json", "/health"},
		{"/api/v1/recommendations/user-1?limit=5", "/api/v1/recommendations/:userID"},
	}

	for _, tt := range tests {
		result := NormalizePath(tt.path)
		if result != tt.expected {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, result, tt.expected)
		}
	}
}

func TestGetExpectedCardinality(t *testing.T) {
	cardinality := GetExpectedCardinality()

	if cardinality < 5 || cardinality > 20 {
		t.Errorf("GetExpectedCardinality() = %d, want between 5 and 20", cardinality)
	}

	t.Logf("Expected cardinality: %d unique path labels", cardinality)
}

func TestNormalizePath_RealWorldScenario(t *testing.T) {
	requests := []string{
		"/api/v1/history/user-1", "/api/v1/history/user-2", "/api/v1/history/user-3",
		"/api/v1/recommendations/user-1", "/api/v1/recommendations/user-2",
		"/api/v1/summarize", "/api/v1/feedback",
		"/health", "/metrics", "/ready", "/live",
	}

	uniquePaths := make(map[string]int)
	for _, path := range requests {
		normalized := NormalizePath(path)
		uniquePaths[normalized]++
	}

	if len(uniquePaths) > 10 {
		t.Errorf("Expected cardinality <=10, got %d unique paths", len(uniquePaths))
	}

	t.Logf("Real-world scenario: %d requests reduced to %d unique paths", len(requests), len(uniquePaths))
	for path, count := range uniquePaths {
		t.Logf("  %s: %d requests", path, count)
	}
}
