package escape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandard(t *testing.T) {
	t.Parallel()

	var e Standard
	require.Equal(t, "a &amp; b &lt;i&gt;", e.EscapeHTML("a & b <i>"))
	require.Equal(t, "nav nav-tabs", e.EscapeHTMLAttr("nav nav-tabs"))
	require.Equal(t, "say &#34;hi&#34; &#39;x&#39;", e.EscapeHTMLAttr(`say "hi" 'x'`))
}

func TestStrictAttr(t *testing.T) {
	t.Parallel()

	var e Strict
	tests := map[string]string{
		"":              "",
		"nav-link_1,a.": "nav-link_1,a.",
		"a b":           "a&#x20;b",
		`"&<>`:          "&quot;&amp;&lt;&gt;",
		"/path?x=1":     "&#x2F;path&#x3F;x&#x3D;1",
		"é":             "&#xE9;",
		"日":             "&#x65E5;",
		"\x01":          "&#xFFFD;",
		"\xff":          "&#xFFFD;",
	}
	for in, want := range tests {
		require.Equal(t, want, e.EscapeHTMLAttr(in), "input %q", in)
	}
	require.Equal(t, "&lt;b&gt;", e.EscapeHTML("<b>"))
}
