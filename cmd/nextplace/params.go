package main

import (
	"github.com/spf13/viper"

	"github.com/nextgenomics/nextplace/internal/params"
)

// paramsFromViper builds a params.Params starting from the defaults
// (spec.md §4.3/§4.4) and applying any non-zero overrides bound from flags
// or the config file, grounded on cmd/vibe-vep/config.go's viper-backed
// settings.
func paramsFromViper() params.Params {
	p := params.Default()

	if v := viper.GetInt("scoring.match"); v != 0 {
		p.Match = v
	}
	if v := viper.GetInt("scoring.mismatch"); v != 0 {
		p.Mismatch = v
	}
	if v := viper.GetInt("scoring.gapOpen"); v != 0 {
		p.GapOpen = v
	}
	if v := viper.GetInt("scoring.gapExtend"); v != 0 {
		p.GapExtend = v
	}
	if viper.IsSet("translatePastStop") {
		p.TranslatePastStop = viper.GetBool("translatePastStop")
	}
	if v := viper.GetInt("workers"); v != 0 {
		p.Workers = v
	}

	return p
}
