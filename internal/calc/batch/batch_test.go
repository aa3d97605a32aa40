package batch

import (
	"testing"

	windzone "Sitewise/internal/calc/windzone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySites(t *testing.T) {
	res, err := ClassifySites(SiteBatchInput{Items: []windzone.Input{
		{Region: windzone.RegionA, Terrain: windzone.TerrainUrban, Topography: windzone.TopoFlat, Shelter: windzone.ShelterSheltered},
		{Region: windzone.RegionW, Terrain: windzone.TerrainUrban, Topography: windzone.TopoSteep, Shelter: windzone.ShelterExposed},
		{Region: "Z", Terrain: windzone.TerrainOpen, Topography: windzone.TopoFlat, Shelter: windzone.ShelterExposed},
	}})
	require.NoError(t, err)
	require.Len(t, res.Results, 3)
	assert.Equal(t, windzone.ZoneLow, res.Results[0].Zone)
	assert.Equal(t, windzone.ZoneSED, res.Results[1].Zone)
	assert.Equal(t, windzone.ZoneVeryHigh, res.Results[2].Zone)
	assert.Equal(t, 1, res.SEDCount)
}

func TestClassifySitesEmpty(t *testing.T) {
	_, err := ClassifySites(SiteBatchInput{})
	require.Error(t, err)
}
