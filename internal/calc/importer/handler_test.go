package importer

import (
	windzone "Sitewise/internal/calc/windzone"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSiteRow(t *testing.T) {
	label, in, err := parseSiteRow([]string{"Lot 12", "a", "Urban", "flat", "Sheltered", "no"})
	require.NoError(t, err)
	assert.Equal(t, "Lot 12", label)
	assert.Equal(t, windzone.RegionA, in.Region)
	assert.Equal(t, windzone.TerrainUrban, in.Terrain)
	assert.Equal(t, windzone.TopoFlat, in.Topography)
	assert.Equal(t, windzone.ShelterSheltered, in.Shelter)
	assert.False(t, in.LeeZone)
}

func TestParseSiteRowLeeZoneVariants(t *testing.T) {
	for _, v := range []string{"yes", "Y", "TRUE", "1"} {
		_, in, err := parseSiteRow([]string{"Lot 1", "W", "open", "hill", "exposed", v})
		require.NoError(t, err)
		assert.True(t, in.LeeZone, "value %q", v)
	}
}

func TestParseSiteRowShort(t *testing.T) {
	_, _, err := parseSiteRow([]string{"Lot 1", "A", "urban"})
	require.Error(t, err)
}

func TestParseSiteRowBlankField(t *testing.T) {
	_, _, err := parseSiteRow([]string{"Lot 1", "A", "", "flat", "exposed"})
	require.Error(t, err)
}
