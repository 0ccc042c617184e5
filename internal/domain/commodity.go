package domain

import "strings"

type CommodityKey string

const (
	CommodityUnknown          CommodityKey = ""
	CommoditySoybeanRainfed   CommodityKey = "SOYBEAN_RAINFED"
	CommoditySoybeanIrrigated CommodityKey = "SOYBEAN_IRRIGATED"
	CommodityCorn             CommodityKey = "CORN"
	CommodityCornSecondCrop   CommodityKey = "CORN_SECOND_CROP"
	CommodityCotton           CommodityKey = "COTTON"
	CommodityRice             CommodityKey = "RICE"
	CommoditySorghum          CommodityKey = "SORGHUM"
	CommodityBeans            CommodityKey = "BEANS"
)

var commodityKeys = map[CommodityKey]struct{}{
	CommoditySoybeanRainfed:   {},
	CommoditySoybeanIrrigated: {},
	CommodityCorn:             {},
	CommodityCornSecondCrop:   {},
	CommodityCotton:           {},
	CommodityRice:             {},
	CommoditySorghum:          {},
	CommodityBeans:            {},
}

func (k CommodityKey) Valid() bool {
	_, ok := commodityKeys[k]
	return ok
}

// Cycle labels often carry a year ("1ª Safra 2024"), so digits alone say
// nothing about the crop.
var secondCropMarkers = []string{"2ª", "2a safra", "2a. safra", "segunda", "safrinha", "second"}

// DeriveCommodityKey maps free-text culture/system/cycle names to a commodity
// key. It runs when a planted area is written (or, for legacy rows, once when
// it is read) and never during aggregation.
func DeriveCommodityKey(culture, system, cycle string) CommodityKey {
	c := strings.ToLower(culture)
	s := strings.ToLower(system)
	cy := strings.ToLower(cycle)

	switch {
	case containsAny(c, "soja", "soy"):
		if containsAny(s, "irrigad", "irrigat") {
			return CommoditySoybeanIrrigated
		}
		return CommoditySoybeanRainfed
	case containsAny(c, "milho", "corn", "maize"):
		if containsAny(c, secondCropMarkers...) || containsAny(cy, secondCropMarkers...) {
			return CommodityCornSecondCrop
		}
		return CommodityCorn
	case containsAny(c, "algod", "cotton"):
		return CommodityCotton
	case containsAny(c, "arroz", "rice"):
		return CommodityRice
	case containsAny(c, "sorgo", "sorghum"):
		return CommoditySorghum
	case containsAny(c, "feij", "bean"):
		return CommodityBeans
	}

	return CommodityUnknown
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
