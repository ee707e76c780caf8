package mailservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/bloglist/internal/common"
)

func TestRenderTemplate(t *testing.T) {
	template := NewTemplate()

	testCases := []struct {
		name         string
		templateName string
		data         any
		expectedErr  bool
		check        func(t *testing.T, n *Notification)
	}{
		{
			name:         "success",
			templateName: signupTemplate,
			data:         common.UserCreatedEvent{ID: 1, Username: "root", Name: "Superuser"},
			check: func(t *testing.T, n *Notification) {
				assert.Equal(t, "New bloglist user: root", n.Subject)
				assert.Contains(t, n.PlainBody, "Name: Superuser")
				assert.Contains(t, n.PlainBody, "Profile: /api/users/1")
				assert.Contains(t, n.HTMLBody, "<td>root</td>")
			},
		},
		{
			name:         "missing name",
			templateName: signupTemplate,
			data:         common.UserCreatedEvent{ID: 2, Username: "anon"},
			check: func(t *testing.T, n *Notification) {
				assert.Contains(t, n.PlainBody, "Name: (not given)")
				assert.Contains(t, n.HTMLBody, "<td>(not given)</td>")
			},
		},
		{
			name:         "username is escaped in html",
			templateName: signupTemplate,
			data:         common.UserCreatedEvent{ID: 3, Username: "<b>bold</b>"},
			check: func(t *testing.T, n *Notification) {
				assert.NotContains(t, n.HTMLBody, "<b>bold</b>")
				assert.Contains(t, n.HTMLBody, "&lt;b&gt;bold&lt;/b&gt;")
			},
		},
		{
			name:         "invalid template name",
			templateName: "invalid_template.html",
			data:         nil,
			expectedErr:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := template.Render(tc.templateName, tc.data)
			assert.Equal(t, tc.expectedErr, err != nil)

			if tc.check != nil {
				require.NotNil(t, n)
				tc.check(t, n)
			}
		})
	}
}

func TestRenderTemplateCachesParse(t *testing.T) {
	tp := NewTemplate()

	_, err := tp.Render(signupTemplate, common.UserCreatedEvent{ID: 1, Username: "root"})
	require.NoError(t, err)

	first := tp.parsed[signupTemplate]
	require.NotNil(t, first)

	_, err = tp.Render(signupTemplate, common.UserCreatedEvent{ID: 2, Username: "other"})
	require.NoError(t, err)
	assert.Same(t, first, tp.parsed[signupTemplate])
}
