package params

import "testing"

// SetupTestConfigCleanup preserves the active configuration allowing tests
// to modify it without restrictions, everything is restored after the test.
func SetupTestConfigCleanup(t testing.TB) {
	temp := EASConfig().Copy()
	undo := SetActiveWithUndo(temp)
	t.Cleanup(undo)
}
