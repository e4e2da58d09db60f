package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text is trimmed", "  Login fails  ", "Login fails"},
		{"script block removed", "<script>alert(1)</script>Hi", "Hi"},
		{"orphan closing tag removed", "<script>alert(1)</script>Hi</script>", "Hi"},
		{"case insensitive with attributes", `Hello <SCRIPT type="text/javascript">x()</ScRiPt> world`, "Hello  world"},
		{"content spanning lines", "a<script>\nline1\nline2\n</script>b", "ab"},
		{"nested reassembly", "<scr<script></script>ipt>evil()</script>ok", "ok"},
		{"other markup kept", "<b>bold</b>", "<b>bold</b>"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeString(tt.in))
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	t.Run("sanitizes string fields and tags, keeps other values", func(t *testing.T) {
		in := BugInput{
			Title:        strPtr("<script>alert(1)</script>Hi</script>"),
			Description:  strPtr("  details  "),
			Severity:     strPtr(" high "),
			AssignedTo:   strPtr("\tbob\n"),
			Priority:     intPtr(4),
			Reproducible: boolPtr(true),
			Tags:         []string{" ui ", "<script>x</script>api"},
		}

		out := SanitizeInput(in)

		assert.Equal(t, "Hi", *out.Title)
		assert.Equal(t, "details", *out.Description)
		assert.Equal(t, "high", *out.Severity)
		assert.Nil(t, out.Status)
		assert.Equal(t, "bob", *out.AssignedTo)
		assert.Equal(t, 4, *out.Priority)
		assert.True(t, *out.Reproducible)
		assert.Equal(t, []string{"ui", "api"}, out.Tags)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		in := BugInput{
			Title: strPtr("  padded  "),
			Tags:  []string{" a "},
		}

		_ = SanitizeInput(in)

		assert.Equal(t, "  padded  ", *in.Title)
		assert.Equal(t, []string{" a "}, in.Tags)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Equal(t, BugInput{}, SanitizeInput(BugInput{}))
	})

	t.Run("idempotent", func(t *testing.T) {
		in := BugInput{
			Title:       strPtr(" <script>a</script> Crash on save "),
			Description: strPtr("<scr<script></script>ipt>x</script> desc"),
			Tags:        []string{" <SCRIPT>1</SCRIPT>tag "},
		}

		once := SanitizeInput(in)
		twice := SanitizeInput(once)

		assert.Equal(t, once, twice)
	})
}
