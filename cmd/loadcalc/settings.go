package main

import (
	"Ampere/internal/calc/electrical"

	"github.com/spf13/viper"
)

// Settings are project defaults taken from .loadcalc.yaml and LOADCALC_*
// variables. Zero values leave the built-in defaults in place.
type Settings struct {
	Voltage      float64 `mapstructure:"voltage"`
	CableType    string  `mapstructure:"cable_type"`
	DemandFactor float64 `mapstructure:"demand_factor"`
	SafetyFactor float64 `mapstructure:"safety_factor"`
	Lang         string  `mapstructure:"lang"`
}

func loadSettings() Settings {
	viper.SetDefault("voltage", 0)
	viper.SetDefault("cable_type", "")
	viper.SetDefault("demand_factor", 0)
	viper.SetDefault("safety_factor", 0)
	viper.SetDefault("lang", "")

	var s Settings
	_ = viper.Unmarshal(&s)
	return s
}

// apply fills fields the project leaves unset.
func (s Settings) apply(p electrical.Project) electrical.Project {
	if p.ProjectInfo.Voltage == 0 {
		p.ProjectInfo.Voltage = s.Voltage
	}
	if p.WiringInfo.CableType == "" {
		p.WiringInfo.CableType = electrical.CableType(s.CableType)
	}
	if p.PanelInfo.DemandFactor <= 0 {
		p.PanelInfo.DemandFactor = s.DemandFactor
	}
	if p.Specifications.SafetyFactor <= 0 {
		p.Specifications.SafetyFactor = s.SafetyFactor
	}
	return p
}
