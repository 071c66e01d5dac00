package htmlelement

import (
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/hanko-navigation/internal/navigation/escape"
)

func TestBuildKeepsAttributeOrderAndSkipsEmpty(t *testing.T) {
	t.Parallel()

	e := New(nil)
	attrs := Attributes{}.
		Set("id", "home").
		Set("title", "").
		Set("class", "nav-link active").
		Set("href", "/?a=1&b=2")

	got := e.Build("A", attrs, "Home")
	require.Equal(t, `<a id="home" class="nav-link active" href="/?a=1&amp;b=2">Home</a>`, got)
}

func TestBuildBooleanAndVoidElements(t *testing.T) {
	t.Parallel()

	e := New(escape.Standard{})

	attrs := Attributes{}.SetBool("open", true)
	require.Equal(t, `<details open><summary>x</summary></details>`, e.Build("details", attrs, "<summary>x</summary>"))

	attrs = attrs.SetBool("open", false)
	require.Empty(t, attrs)

	require.Equal(t, `<hr class="dropdown-divider">`, e.Build("hr", Attributes{}.Set("class", "dropdown-divider"), "ignored"))
}

func TestSetReplacesInPlace(t *testing.T) {
	t.Parallel()

	attrs := Attributes{}.Set("a", "1").Set("b", "2").Set("a", "3")
	require.Equal(t, Attributes{{Name: "a", Value: "3"}, {Name: "b", Value: "2"}}, attrs)

	v, ok := attrs.Get("b")
	require.True(t, ok)
	require.Equal(t, "2", v)

	_, ok = attrs.Get("missing")
	require.False(t, ok)
}

func TestBuildUsesConfiguredEscaper(t *testing.T) {
	t.Parallel()

	e := New(escape.Strict{})
	require.Equal(t, `<span class="a&#x20;b">x</span>`, e.Build("span", Attributes{}.Set("class", "a b"), "x"))
}
