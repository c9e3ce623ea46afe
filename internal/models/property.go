package models

// Defaults applied to optional fields of a prediction request
const (
	DefaultFloor            = 1.0
	DefaultFloorCount       = 1.0
	DefaultBuildYear        = 1980.0
	DefaultBuildingMaterial = "brick"
	DefaultCondition        = "unknown"
	DefaultAmenityFlag      = 0
)

// Column names the pipelines were trained on
var (
	CategoricalColumns = []string{"city", "type", "ownership", "buildingMaterial", "condition"}
	NumericColumns     = []string{
		"squareMeters", "rooms", "floor", "floorCount", "buildYear",
		"centreDistance", "poiCount", "schoolDistance", "clinicDistance",
		"postOfficeDistance", "kindergartenDistance", "restaurantDistance",
		"collegeDistance", "pharmacyDistance",
		"hasParkingSpace", "hasBalcony", "hasElevator", "hasSecurity", "hasStorageRoom",
	}
)

// PropertyInput is the body of a prediction request. Pointer fields tell an
// absent value apart from a zero value.
type PropertyInput struct {
	City             *string `json:"city" binding:"required"`
	Type             *string `json:"type" binding:"required"`
	Ownership        *string `json:"ownership" binding:"required"`
	BuildingMaterial *string `json:"buildingMaterial"`
	Condition        *string `json:"condition"`

	SquareMeters *float64 `json:"squareMeters" binding:"required"`
	Rooms        *float64 `json:"rooms" binding:"required"`
	Floor        *float64 `json:"floor"`
	FloorCount   *float64 `json:"floorCount"`
	BuildYear    *float64 `json:"buildYear"`

	CentreDistance       *float64 `json:"centreDistance" binding:"required"`
	PoiCount             *float64 `json:"poiCount" binding:"required"`
	SchoolDistance       *float64 `json:"schoolDistance" binding:"required"`
	ClinicDistance       *float64 `json:"clinicDistance" binding:"required"`
	PostOfficeDistance   *float64 `json:"postOfficeDistance" binding:"required"`
	KindergartenDistance *float64 `json:"kindergartenDistance" binding:"required"`
	RestaurantDistance   *float64 `json:"restaurantDistance" binding:"required"`
	CollegeDistance      *float64 `json:"collegeDistance" binding:"required"`
	PharmacyDistance     *float64 `json:"pharmacyDistance" binding:"required"`

	HasParkingSpace *int `json:"hasParkingSpace" binding:"omitempty,oneof=0 1"`
	HasBalcony      *int `json:"hasBalcony" binding:"omitempty,oneof=0 1"`
	HasElevator     *int `json:"hasElevator" binding:"omitempty,oneof=0 1"`
	HasSecurity     *int `json:"hasSecurity" binding:"omitempty,oneof=0 1"`
	HasStorageRoom  *int `json:"hasStorageRoom" binding:"omitempty,oneof=0 1"`
}

// PropertyRecord is one listing's complete feature vector
type PropertyRecord struct {
	City             string `json:"city"`
	Type             string `json:"type"`
	Ownership        string `json:"ownership"`
	BuildingMaterial string `json:"buildingMaterial"`
	Condition        string `json:"condition"`

	SquareMeters float64 `json:"squareMeters"`
	Rooms        float64 `json:"rooms"`
	Floor        float64 `json:"floor"`
	FloorCount   float64 `json:"floorCount"`
	BuildYear    float64 `json:"buildYear"`

	CentreDistance       float64 `json:"centreDistance"`
	PoiCount             float64 `json:"poiCount"`
	SchoolDistance       float64 `json:"schoolDistance"`
	ClinicDistance       float64 `json:"clinicDistance"`
	PostOfficeDistance   float64 `json:"postOfficeDistance"`
	KindergartenDistance float64 `json:"kindergartenDistance"`
	RestaurantDistance   float64 `json:"restaurantDistance"`
	CollegeDistance      float64 `json:"collegeDistance"`
	PharmacyDistance     float64 `json:"pharmacyDistance"`

	HasParkingSpace int `json:"hasParkingSpace"`
	HasBalcony      int `json:"hasBalcony"`
	HasElevator     int `json:"hasElevator"`
	HasSecurity     int `json:"hasSecurity"`
	HasStorageRoom  int `json:"hasStorageRoom"`
}

// Record applies the defaults to every absent optional field. Required
// fields are expected to be validated already; a nil required field reads
// as its zero value.
func (in *PropertyInput) Record() PropertyRecord {
	return PropertyRecord{
		City:             stringOr(in.City, ""),
		Type:             stringOr(in.Type, ""),
		Ownership:        stringOr(in.Ownership, ""),
		BuildingMaterial: stringOr(in.BuildingMaterial, DefaultBuildingMaterial),
		Condition:        stringOr(in.Condition, DefaultCondition),

		SquareMeters: floatOr(in.SquareMeters, 0),
		Rooms:        floatOr(in.Rooms, 0),
		Floor:        floatOr(in.Floor, DefaultFloor),
		FloorCount:   floatOr(in.FloorCount, DefaultFloorCount),
		BuildYear:    floatOr(in.BuildYear, DefaultBuildYear),

		CentreDistance:       floatOr(in.CentreDistance, 0),
		PoiCount:             floatOr(in.PoiCount, 0),
		SchoolDistance:       floatOr(in.SchoolDistance, 0),
		ClinicDistance:       floatOr(in.ClinicDistance, 0),
		PostOfficeDistance:   floatOr(in.PostOfficeDistance, 0),
		KindergartenDistance: floatOr(in.KindergartenDistance, 0),
		RestaurantDistance:   floatOr(in.RestaurantDistance, 0),
		CollegeDistance:      floatOr(in.CollegeDistance, 0),
		PharmacyDistance:     floatOr(in.PharmacyDistance, 0),

		HasParkingSpace: intOr(in.HasParkingSpace, DefaultAmenityFlag),
		HasBalcony:      intOr(in.HasBalcony, DefaultAmenityFlag),
		HasElevator:     intOr(in.HasElevator, DefaultAmenityFlag),
		HasSecurity:     intOr(in.HasSecurity, DefaultAmenityFlag),
		HasStorageRoom:  intOr(in.HasStorageRoom, DefaultAmenityFlag),
	}
}

// Categorical returns the record's categorical columns keyed by training name
func (r PropertyRecord) Categorical() map[string]string {
	return map[string]string{
		"city":             r.City,
		"type":             r.Type,
		"ownership":        r.Ownership,
		"buildingMaterial": r.BuildingMaterial,
		"condition":        r.Condition,
	}
}

// Numeric returns the record's numeric columns keyed by training name.
// Amenity flags are passed as 0/1 floats.
func (r PropertyRecord) Numeric() map[string]float64 {
	return map[string]float64{
		"squareMeters":         r.SquareMeters,
		"rooms":                r.Rooms,
		"floor":                r.Floor,
		"floorCount":           r.FloorCount,
		"buildYear":            r.BuildYear,
		"centreDistance":       r.CentreDistance,
		"poiCount":             r.PoiCount,
		"schoolDistance":       r.SchoolDistance,
		"clinicDistance":       r.ClinicDistance,
		"postOfficeDistance":   r.PostOfficeDistance,
		"kindergartenDistance": r.KindergartenDistance,
		"restaurantDistance":   r.RestaurantDistance,
		"collegeDistance":      r.CollegeDistance,
		"pharmacyDistance":     r.PharmacyDistance,
		"hasParkingSpace":      float64(r.HasParkingSpace),
		"hasBalcony":           float64(r.HasBalcony),
		"hasElevator":          float64(r.HasElevator),
		"hasSecurity":          float64(r.HasSecurity),
		"hasStorageRoom":       float64(r.HasStorageRoom),
	}
}

// PredictionResponse is returned by POST /predict/:mode
type PredictionResponse struct {
	Mode           string  `json:"mode"`
	PredictedPrice float64 `json:"predicted_price"`
}

func stringOr(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
