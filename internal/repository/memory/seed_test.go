package memory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory_LoadSeed(t *testing.T) {
	ctx := context.Background()

	t.Run("employees and companies", func(t *testing.T) {
		d := NewDirectory()
		employees, companies, err := d.LoadSeed(strings.NewReader(`
employees:
  - id: E1
    name: Ayesha Khan
    email: ayesha@example.com
    phone_number: "+92 300 0000000"
companies: [C1, C2]
`))
		require.NoError(t, err)
		assert.Equal(t, 1, employees)
		assert.Equal(t, 2, companies)

		e, err := d.GetByID(ctx, "E1")
		require.NoError(t, err)
		assert.Equal(t, "Ayesha Khan", e.Name)
		assert.Equal(t, "+92 300 0000000", e.PhoneNumber)

		ok, err := d.Exists(ctx, "C2")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("empty document", func(t *testing.T) {
		employees, companies, err := NewDirectory().LoadSeed(strings.NewReader(""))
		require.NoError(t, err)
		assert.Zero(t, employees)
		assert.Zero(t, companies)
	})

	t.Run("employee without id is rejected", func(t *testing.T) {
		d := NewDirectory()
		_, _, err := d.LoadSeed(strings.NewReader("employees:\n  - name: Nobody\n"))
		require.Error(t, err)

		_, err = d.GetByID(ctx, "")
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, _, err := NewDirectory().LoadSeed(strings.NewReader("employees: [:"))
		assert.Error(t, err)
	})
}
