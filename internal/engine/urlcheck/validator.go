package urlcheck

import (
	"net/url"

	"linkguard/internal/pkg/errors"
	"linkguard/internal/platform/models"
)

// ValidateURL classifies a candidate string as structurally valid or not.
// Valid means it parses as an absolute URL with a recognisable scheme and a
// host component. No network I/O.
func ValidateURL(raw string) models.StructureResult {
	u, err := url.Parse(raw)
	if err != nil {
		return models.StructureResult{
			Status:  models.StructureStatusInvalid,
			Message: err.Error(),
		}
	}

	if u.Scheme == "" || u.Host == "" {
		return models.StructureResult{
			Status:  models.StructureStatusInvalid,
			Message: "URL must be absolute with a scheme and host",
		}
	}

	return models.StructureResult{
		Status: models.StructureStatusValid,
		Domain: u.Hostname(),
	}
}

// invalidResult builds the full stub result for a URL that failed structural
// validation; the orchestrator uses it to skip all network calls for the slot.
func invalidResult(raw string, structure models.StructureResult) models.URLCheckResult {
	return models.URLCheckResult{
		URL:       raw,
		Structure: structure,
		Safety: models.SafetyResult{
			Status:  models.SafetyStatusError,
			Message: errors.ErrInvalidURL.Error(),
		},
		Redirects: models.RedirectResult{
			Status:      models.RedirectStatusError,
			Chain:       []string{raw},
			StatusCodes: []int{},
			FinalSafety: models.SafetyResult{Status: models.SafetyStatusError},
			Message:     errors.ErrInvalidURL.Error(),
		},
	}
}
