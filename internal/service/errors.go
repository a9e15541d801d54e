package service

import "errors"

var (
	ErrInvalidTimeframe = errors.New("invalid timeframe")
	ErrInvalidVariant   = errors.New("invalid sentiment variant")
	ErrInvalidTerm      = errors.New("term must be one of: day trade, swing trade, position trade")
	ErrInvalidRiskLevel = errors.New("risk level must be one of: conservative, moderate, aggressive")
	ErrInvalidAssets    = errors.New("between 2 and 5 assets are required")
	ErrInvalidStock     = errors.New("stock name is required")
	ErrInvalidAsset     = errors.New("asset is required")
	ErrAINotConfigured  = errors.New("no AI provider configured")
)

// IsValidationError reports whether err was caused by bad caller input.
func IsValidationError(err error) bool {
	for _, target := range []error{ErrInvalidTimeframe, ErrInvalidVariant, ErrInvalidTerm, ErrInvalidRiskLevel, ErrInvalidAssets, ErrInvalidStock, ErrInvalidAsset} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
