package sanitize

import (
	"strings"
	"testing"
)

func TestEscapeHTML(t *testing.T) {
	got := EscapeHTML(`<b>City & "Council"</b>`)
	want := "&lt;b&gt;City &amp; &#34;Council&#34;&lt;/b&gt;"
	if got != want {
		t.Errorf("Expected %q but got %q", want, got)
	}
}

func TestDeniedPattern_CatchesMarkupInjection(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"script tag", `hello <script>alert(1)</script>`},
		{"script tag uppercase", `<SCRIPT>alert(1)</SCRIPT>`},
		{"javascript url", `click javascript:alert(1)`},
		{"vbscript url", `vbscript:msgbox(1)`},
		{"iframe", `<iframe src="x">`},
		{"object", `<object data="x">`},
		{"embed", `<embed src="x">`},
		{"event handler", `<img src=x onerror=alert(1)>`},
		{"event handler spaced", `<div onclick = "boom()">`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if DeniedPattern(tc.input) == "" {
				t.Errorf("Expected %q to be denied", tc.input)
			}
		})
	}
}

func TestDeniedPattern_AllowsOrdinaryText(t *testing.T) {
	cases := []string{
		"Clean Streets Initiative",
		"Budget discussion on Monday",
		"Contains the word online", // 'on...' words are not handler attributes
		"salt & pepper < sugar",    // bare angle bracket is fine, escaping handles it
	}

	for _, input := range cases {
		if pattern := DeniedPattern(input); pattern != "" {
			t.Errorf("Expected %q to pass but it matched %q", input, pattern)
		}
	}
}

func TestCheckName_EnforcesLengthCeiling(t *testing.T) {
	if err := CheckName("name", strings.Repeat("a", MaxNameLength)); err != nil {
		t.Errorf("Expected name at the ceiling to pass but got: %v", err)
	}
	if err := CheckName("name", strings.Repeat("a", MaxNameLength+1)); err == nil {
		t.Error("Expected over-length name to fail")
	}
}

func TestCheckDescription_EnforcesLengthCeiling(t *testing.T) {
	if err := CheckDescription("description", strings.Repeat("b", MaxDescriptionLength+1)); err == nil {
		t.Error("Expected over-length description to fail")
	}
}

func TestCheckFreeText_NamesTheFieldInErrors(t *testing.T) {
	err := CheckFreeText("campaign name", "<script>", MaxNameLength)
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
	if !strings.Contains(err.Error(), "campaign name") {
		t.Errorf("Expected error to name the field, got %q", err.Error())
	}
}
