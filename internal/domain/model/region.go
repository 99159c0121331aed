//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "strings"

// RegionLevel is the administrative granularity of a region or contest scope.
type RegionLevel string

const (
	RegionLevelNone     RegionLevel = "NONE"
	RegionLevelCity     RegionLevel = "CITY"
	RegionLevelProvince RegionLevel = "PROVINCE"
	RegionLevelDistrict RegionLevel = "DISTRICT"
)

// Valid reports whether the region level is supported.
func (l RegionLevel) Valid() bool {
	switch l {
	case RegionLevelNone, RegionLevelCity, RegionLevelProvince, RegionLevelDistrict:
		return true
	default:
		return false
	}
}

// ParseRegionLevel normalizes a level string and reports whether it is supported.
func ParseRegionLevel(value string) (RegionLevel, bool) {
	level := RegionLevel(strings.ToUpper(strings.TrimSpace(value)))
	if level.Valid() {
		return level, true
	}
	return "", false
}

// Region is a named administrative area.
type Region struct {
	Code  string      `json:"code"`
	Name  string      `json:"name"`
	Level RegionLevel `json:"level"`
}
