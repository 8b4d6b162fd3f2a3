package waste

import "liyu1981.xyz/prioribin-service/pkg/models"

const (
	CriticalThreshold = 90
	WarningThreshold  = 70
)

// Classify maps a fill level to its tier. Levels outside 0..100 are not rejected,
// they fall into whichever tier the thresholds put them in.
func Classify(fillLevel int) models.Status {
	switch {
	case fillLevel >= CriticalThreshold:
		return models.StatusCritical
	case fillLevel >= WarningThreshold:
		return models.StatusWarning
	default:
		return models.StatusNormal
	}
}
