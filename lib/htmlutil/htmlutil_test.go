package htmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestGetText(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(
		`<ul><li><a><span class="ui-menuitem-text">Mon planning</span></a></li></ul>`,
	))
	require.NoError(t, err)

	require.Contains(t, GetText(doc), "Mon planning")
}

func TestCleanText(t *testing.T) {
	cases := []struct {
		in     string
		expect string
	}{
		{"  Plannings \n des groupes ", "Plannings des groupes"},
		{"CIR 1", "CIR 1"},
		{"already clean", "already clean"},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, CleanText(test.in))
	}
}
