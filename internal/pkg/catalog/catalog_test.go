package catalog

import "testing"

func TestColorAssignment(t *testing.T) {
	names := []string{"GitHub", "Datadog", "Cursor", "OpenAI", "Clickhouse", "Linear"}
	c := New(names)

	t.Run("Palette Wraps After Five Entries", func(t *testing.T) {
		// The 6th configured integration reuses the 1st color.
		if got, want := c.ColorFor("Linear"), c.ColorFor("GitHub"); got != want {
			t.Errorf("expected 6th entry to wrap to first color: got %s, want %s", got, want)
		}
		if c.ColorFor("GitHub") == c.ColorFor("Datadog") {
			t.Error("expected adjacent entries to have distinct colors")
		}
	})

	t.Run("Unknown Name Falls Back To First Color", func(t *testing.T) {
		if got, want := c.ColorFor("NotInCatalog"), c.ColorFor("GitHub"); got != want {
			t.Errorf("expected fallback color %s, got %s", want, got)
		}
	})

	t.Run("Entries Preserve Order", func(t *testing.T) {
		entries := c.Entries()
		if len(entries) != len(names) {
			t.Fatalf("expected %d entries, got %d", len(names), len(entries))
		}
		for i, e := range entries {
			if e.Name != names[i] {
				t.Errorf("entry %d: got %s, want %s", i, e.Name, names[i])
			}
			if e.Color == "" {
				t.Errorf("entry %d: missing color", i)
			}
		}
	})
}
