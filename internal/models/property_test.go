package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalBody = `{
	"city": "warszawa",
	"type": "blockOfFlats",
	"squareMeters": 50.0,
	"rooms": 2.0,
	"centreDistance": 2.0,
	"poiCount": 10.0,
	"schoolDistance": 0.5,
	"clinicDistance": 1.0,
	"postOfficeDistance": 0.5,
	"kindergartenDistance": 0.5,
	"restaurantDistance": 0.5,
	"collegeDistance": 2.0,
	"pharmacyDistance": 0.5,
	"ownership": "condominium"
}`

func TestRecordAppliesDefaults(t *testing.T) {
	var in PropertyInput
	require.NoError(t, json.Unmarshal([]byte(minimalBody), &in))

	record := in.Record()

	assert.Equal(t, 1.0, record.Floor)
	assert.Equal(t, 1.0, record.FloorCount)
	assert.Equal(t, 1980.0, record.BuildYear)
	assert.Equal(t, "brick", record.BuildingMaterial)
	assert.Equal(t, "unknown", record.Condition)
	assert.Zero(t, record.HasParkingSpace)
	assert.Zero(t, record.HasBalcony)
	assert.Zero(t, record.HasElevator)
	assert.Zero(t, record.HasSecurity)
	assert.Zero(t, record.HasStorageRoom)

	assert.Equal(t, "warszawa", record.City)
	assert.Equal(t, 50.0, record.SquareMeters)
	assert.Equal(t, 0.5, record.PharmacyDistance)
}

func TestRecordKeepsProvidedValues(t *testing.T) {
	body := `{
		"city": "krakow", "type": "tenement", "ownership": "cooperative",
		"buildingMaterial": "concreteSlab", "condition": "premium",
		"squareMeters": 72.5, "rooms": 3, "floor": 0, "floorCount": 4, "buildYear": 1930,
		"centreDistance": 0.8, "poiCount": 40,
		"schoolDistance": 0.1, "clinicDistance": 0.2, "postOfficeDistance": 0.3,
		"kindergartenDistance": 0.4, "restaurantDistance": 0.05,
		"collegeDistance": 0.6, "pharmacyDistance": 0.07,
		"hasParkingSpace": 1, "hasBalcony": 1, "hasElevator": 0, "hasSecurity": 1, "hasStorageRoom": 1
	}`

	var in PropertyInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	record := in.Record()

	assert.Equal(t, 0.0, record.Floor, "an explicit zero floor is not replaced by the default")
	assert.Equal(t, 4.0, record.FloorCount)
	assert.Equal(t, 1930.0, record.BuildYear)
	assert.Equal(t, "concreteSlab", record.BuildingMaterial)
	assert.Equal(t, "premium", record.Condition)
	assert.Equal(t, 1, record.HasParkingSpace)
	assert.Equal(t, 0, record.HasElevator)
}

func TestRecordNullOptionalFieldsTakeDefaults(t *testing.T) {
	body := `{"floor": null, "condition": null, "hasBalcony": null}`

	var in PropertyInput
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	record := in.Record()

	assert.Equal(t, DefaultFloor, record.Floor)
	assert.Equal(t, DefaultCondition, record.Condition)
	assert.Equal(t, DefaultAmenityFlag, record.HasBalcony)
}

func TestProjectionUsesTrainingColumnNames(t *testing.T) {
	var in PropertyInput
	require.NoError(t, json.Unmarshal([]byte(minimalBody), &in))
	record := in.Record()

	categorical := record.Categorical()
	numeric := record.Numeric()

	assert.Len(t, categorical, len(CategoricalColumns))
	for _, column := range CategoricalColumns {
		assert.Contains(t, categorical, column)
	}

	assert.Len(t, numeric, len(NumericColumns))
	for _, column := range NumericColumns {
		assert.Contains(t, numeric, column)
	}

	assert.Equal(t, "condominium", categorical["ownership"])
	assert.Equal(t, 1980.0, numeric["buildYear"])
	assert.Equal(t, 0.0, numeric["hasStorageRoom"])
}
