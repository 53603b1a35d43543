package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsShow_ListsProfiles(t *testing.T) {
	_, cleanup := setupCLITest(t, testSummary())
	defer cleanup()

	out, err := execute("settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[flair]")
	assert.Contains(t, out, "FLAIR Showers")
}

func TestSettingsSet_PersistsValue(t *testing.T) {
	_, cleanup := setupCLITest(t, testSummary())
	defer cleanup()

	_, err := execute("settings", "set", "vendors.flair.create_variants", "true")
	require.NoError(t, err)

	vendor, err := configStore.Vendor("flair")
	require.NoError(t, err)
	assert.True(t, vendor.CreateVariants)
}

func TestSettingsSet_CoercesTypes(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  any
	}{
		{name: "bool", value: "true", want: true},
		{name: "int", value: "25", want: int64(25)},
		{name: "string", value: "/data/flair", want: "/data/flair"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coerce(tt.value))
		})
	}
}

func TestSettingsVendors_ListsNames(t *testing.T) {
	_, cleanup := setupCLITest(t, testSummary())
	defer cleanup()

	require.NoError(t, configStore.Set("vendors.acme.data_dir", "/data/acme"))

	out, err := execute("settings", "vendors")

	require.NoError(t, err)
	assert.Contains(t, out, "acme")
	assert.Contains(t, out, "flair")
}

func TestVersionCmd(t *testing.T) {
	_, cleanup := setupCLITest(t, testSummary())
	defer cleanup()

	out, err := execute("version")

	require.NoError(t, err)
	assert.Contains(t, out, "vendorsync version")
}
