package config

// FormOptions lists the categorical values the models were trained on.
// Values outside these lists are still accepted by the API; the one-hot
// encoder maps them to all-zero columns.
type FormOptions struct {
	Cities            []string `json:"cities"`
	BuildingTypes     []string `json:"building_types"`
	Ownerships        []string `json:"ownerships"`
	BuildingMaterials []string `json:"building_materials"`
	Conditions        []string `json:"conditions"`
}

// SupportedCities is the list of cities covered by the training data
var SupportedCities = []string{
	"szczecin", "warszawa", "krakow", "poznan", "gdansk", "wroclaw",
	"lodz", "gdynia", "bialystok", "bydgoszcz", "czestochowa", "katowice",
	"lublin", "radom", "rzeszow", "sosnowiec",
}

// DefaultFormOptions returns the options shown by the prediction form
func DefaultFormOptions() FormOptions {
	return FormOptions{
		Cities:            append([]string(nil), SupportedCities...),
		BuildingTypes:     []string{"blockOfFlats", "tenement", "apartmentBuilding"},
		Ownerships:        []string{"condominium", "cooperative", "municipal"},
		BuildingMaterials: []string{"brick", "concreteSlab"},
		Conditions:        []string{"premium", "low", "unknown"},
	}
}
