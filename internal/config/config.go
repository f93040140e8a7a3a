// Package config loads RuleSet and training.Config values from HCL files,
// the same way the teacher's server config loads ServerConfig: parse if
// the file exists, fall back to defaults if it doesn't, fill zero-valued
// fields after decode, then validate.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/ckhausman/blackjack-engine/internal/counting"
	"github.com/ckhausman/blackjack-engine/internal/game"
	"github.com/ckhausman/blackjack-engine/internal/strategy"
	"github.com/ckhausman/blackjack-engine/internal/training"
)

// ruleSetFile is the on-disk HCL shape for a rule set: plain scalars the
// decoder can handle directly, converted to strategy.RuleSet afterward so
// unknown enum names surface as a ConfigurationError instead of a
// silently-zeroed field.
type ruleSetFile struct {
	NumDecks          int     `hcl:"num_decks,optional"`
	DealerHitsSoft17  bool    `hcl:"dealer_hits_soft_17,optional"`
	DoubleAfterSplit  bool    `hcl:"double_after_split,optional"`
	Surrender         string  `hcl:"surrender,optional"`
	BlackjackPayout   string  `hcl:"blackjack_payout,optional"`
	DealerPeeks       bool    `hcl:"dealer_peeks,optional"`
	ResplitAces       bool    `hcl:"resplit_aces,optional"`
	HitSplitAces      bool    `hcl:"hit_split_aces,optional"`
	MaxSplits         int     `hcl:"max_splits,optional"`
	DoubleRestriction string  `hcl:"double_restriction,optional"`
	Penetration       float64 `hcl:"penetration,optional"`
}

// trainingConfigFile is the on-disk HCL shape for training.Config.
type trainingConfigFile struct {
	CountingSystem      string  `hcl:"counting_system,optional"`
	SpeedDrillCards     int     `hcl:"speed_drill_cards,optional"`
	DeviationTCMin      float64 `hcl:"deviation_tc_min,optional"`
	DeviationTCMax      float64 `hcl:"deviation_tc_max,optional"`
	StartingBankrollBig int64   `hcl:"starting_bankroll,optional"`
}

// LoadRuleSet loads a RuleSet from an HCL file at path, or returns the
// canonical 6-deck S17 DAS default if path does not exist. Numeric and
// string fields left out of the file keep their defaults; boolean fields
// are always taken from the file, so an omitted boolean is false even
// where the default is true (double_after_split, dealer_peeks).
func LoadRuleSet(path string) (strategy.RuleSet, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return strategy.Default6DeckS17DAS(), nil
	}

	var decoded ruleSetFile
	if err := decodeHCLFile(path, &decoded); err != nil {
		return strategy.RuleSet{}, err
	}

	rules := strategy.Default6DeckS17DAS()
	if decoded.NumDecks != 0 {
		rules.NumDecks = decoded.NumDecks
	}
	rules.DealerHitsSoft17 = decoded.DealerHitsSoft17
	rules.DoubleAfterSplit = decoded.DoubleAfterSplit
	rules.DealerPeeksOnTenOrAce = decoded.DealerPeeks
	rules.ResplitAces = decoded.ResplitAces
	rules.HitSplitAces = decoded.HitSplitAces
	if decoded.MaxSplits != 0 {
		rules.MaxSplits = decoded.MaxSplits
	}
	if decoded.Penetration != 0 {
		rules.Penetration = decoded.Penetration
	}

	if decoded.Surrender != "" {
		policy, ok := surrenderPolicyByName(decoded.Surrender)
		if !ok {
			return strategy.RuleSet{}, game.NewConfigurationError("unknown surrender policy "+decoded.Surrender, nil)
		}
		rules.SurrenderAllowed = policy
	}
	if decoded.BlackjackPayout != "" {
		payout, ok := blackjackPayoutByName(decoded.BlackjackPayout)
		if !ok {
			return strategy.RuleSet{}, game.NewConfigurationError("unknown blackjack payout "+decoded.BlackjackPayout, nil)
		}
		rules.BlackjackPayout = payout
	}
	if decoded.DoubleRestriction != "" {
		restriction, ok := doubleRestrictionByName(decoded.DoubleRestriction)
		if !ok {
			return strategy.RuleSet{}, game.NewConfigurationError("unknown double restriction "+decoded.DoubleRestriction, nil)
		}
		rules.DoubleRestriction = restriction
	}

	if err := rules.Validate(); err != nil {
		return strategy.RuleSet{}, game.NewConfigurationError("invalid rule set", err)
	}
	return rules, nil
}

// LoadTrainingConfig loads a training.Config from an HCL file at path, or
// returns training.DefaultConfig() if path does not exist.
func LoadTrainingConfig(path string) (training.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return training.DefaultConfig(), nil
	}

	var decoded trainingConfigFile
	if err := decodeHCLFile(path, &decoded); err != nil {
		return training.Config{}, err
	}

	cfg := training.DefaultConfig()
	if decoded.CountingSystem != "" {
		if _, ok := counting.ByName(decoded.CountingSystem); !ok {
			return training.Config{}, game.NewConfigurationError("unknown counting system "+decoded.CountingSystem, nil)
		}
		cfg.CountingSystem = decoded.CountingSystem
	}
	if decoded.SpeedDrillCards != 0 {
		cfg.SpeedDrillCards = decoded.SpeedDrillCards
	}
	if decoded.DeviationTCMin != 0 {
		cfg.DeviationTCMin = decoded.DeviationTCMin
	}
	if decoded.DeviationTCMax != 0 {
		cfg.DeviationTCMax = decoded.DeviationTCMax
	}
	if decoded.StartingBankrollBig != 0 {
		cfg.StartingBankrollBig = decoded.StartingBankrollBig
	}

	if err := cfg.Validate(); err != nil {
		return training.Config{}, game.NewConfigurationError("invalid training config", err)
	}
	return cfg, nil
}

func decodeHCLFile(path string, target interface{}) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return game.NewConfigurationError(fmt.Sprintf("failed to parse %s", path), diagsError(diags))
	}
	diags = gohcl.DecodeBody(file.Body, nil, target)
	if diags.HasErrors() {
		return game.NewConfigurationError(fmt.Sprintf("failed to decode %s", path), diagsError(diags))
	}
	return nil
}

func diagsError(diags hcl.Diagnostics) error {
	return fmt.Errorf("%s", diags.Error())
}

func surrenderPolicyByName(name string) (strategy.SurrenderPolicy, bool) {
	switch name {
	case "none":
		return strategy.SurrenderNone, true
	case "late":
		return strategy.SurrenderLate, true
	case "early":
		return strategy.SurrenderEarly, true
	default:
		return 0, false
	}
}

func blackjackPayoutByName(name string) (strategy.BlackjackPayout, bool) {
	switch name {
	case "3:2":
		return strategy.Payout3to2, true
	case "6:5":
		return strategy.Payout6to5, true
	case "1:1":
		return strategy.Payout1to1, true
	default:
		return 0, false
	}
}

func doubleRestrictionByName(name string) (strategy.DoubleRestriction, bool) {
	switch name {
	case "any_two_cards":
		return strategy.DoubleAnyTwoCards, true
	case "9_to_11":
		return strategy.Double9to11Only, true
	case "10_to_11":
		return strategy.Double10to11Only, true
	default:
		return 0, false
	}
}
