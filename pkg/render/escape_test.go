package render

import "testing"

func TestEscape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHTML string
		wantAttr string
	}{
		{"empty", "", "", ""},
		{"plain text", "Hello, World!", "Hello, World!", "Hello, World!"},
		{"ampersand", "Tom & Jerry", "Tom &amp; Jerry", "Tom &amp; Jerry"},
		{"angle brackets", "a < b > c", "a &lt; b &gt; c", "a &lt; b &gt; c"},
		{"quotes", `say "it's"`, "say &quot;it&#39;s&quot;", "say &quot;it&#39;s&quot;"},
		{"whitespace", "a\nb\tc\r", "a\nb\tc\r", "a&#10;b&#9;c&#13;"},
		{"unicode preserved", "Hello 世界 🌍", "Hello 世界 🌍", "Hello 世界 🌍"},
		{
			"script tag",
			"<script>alert('xss')</script>",
			"&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;",
			"&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeHTML(tt.input); got != tt.wantHTML {
				t.Errorf("escapeHTML(%q) = %q, want %q", tt.input, got, tt.wantHTML)
			}
			if got := escapeAttr(tt.input); got != tt.wantAttr {
				t.Errorf("escapeAttr(%q) = %q, want %q", tt.input, got, tt.wantAttr)
			}
		})
	}
}
