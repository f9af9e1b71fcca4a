package bulk

import "adscope/internal/domain"

// MinDefaultBid is the platform's lowest accepted ad group default bid.
const MinDefaultBid = 0.02

// ValidateAdGroup checks an auto campaign ad group and returns every
// violation, not just the first.
func ValidateAdGroup(ag domain.AdGroupConfig) []string {
	var errs []string

	if ag.AdGroupName == "" {
		errs = append(errs, "Ad group name is required")
	}
	if ag.DefaultBid < MinDefaultBid {
		errs = append(errs, "Default bid must be at least $0.02")
	}
	if !ag.CloseMatch && !ag.LooseMatch && !ag.Substitutes && !ag.Complements {
		errs = append(errs, "At least one targeting type must be enabled")
	}

	return errs
}

// ValidateManualAdGroup checks a manual campaign ad group.
func ValidateManualAdGroup(ag domain.ManualAdGroupConfig) []string {
	var errs []string

	if ag.AdGroupName == "" {
		errs = append(errs, "Ad group name is required")
	}
	if ag.DefaultBid < MinDefaultBid {
		errs = append(errs, "Default bid must be at least $0.02")
	}

	return errs
}
