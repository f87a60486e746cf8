package models

const (
	SafetyStatusSafe       = "safe"
	SafetyStatusUnsafe     = "unsafe"
	SafetyStatusError      = "error"
	SafetyStatusNoRedirect = "no_redirect"
	SafetyStatusInvalid    = "invalid"

	RedirectStatusClean      = "clean"
	RedirectStatusSuspicious = "suspicious"
	RedirectStatusError      = "error"
	RedirectStatusInvalid    = "invalid"

	StructureStatusValid   = "valid"
	StructureStatusInvalid = "invalid"
)

// SafetyResult is the scanning-service verdict for a single URL.
// Status "unsafe" implies Positives > 0; "safe" implies Positives == 0.
type SafetyResult struct {
	Status     string `json:"status"`
	Positives  int    `json:"positives"`
	TotalScans int    `json:"total_scans"`
	Message    string `json:"message,omitempty"`
}

// RedirectResult describes a manually traversed redirect chain. Chain starts
// with the origin URL; StatusCodes is parallel to the requests actually
// issued, so on a mid-chain error it may be shorter than Chain.
type RedirectResult struct {
	Status      string       `json:"status"`
	Chain       []string     `json:"chain"`
	StatusCodes []int        `json:"status_codes"`
	FinalSafety SafetyResult `json:"final_safety"`
	Message     string       `json:"message,omitempty"`
}

type StructureResult struct {
	Status  string `json:"status"`
	Domain  string `json:"domain,omitempty"`
	Message string `json:"message,omitempty"`
}

// URLCheckResult is the composite verdict for one input URL. Immutable once
// produced; one per batch slot, in input order.
type URLCheckResult struct {
	URL       string          `json:"url"`
	Structure StructureResult `json:"structure"`
	Safety    SafetyResult    `json:"safety"`
	Redirects RedirectResult  `json:"redirects"`
}

// ScanRecord is the persisted trace of one completed check.
type ScanRecord struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	StructureStatus string `json:"structure_status"`
	SafetyStatus    string `json:"safety_status"`
	Positives       int    `json:"positives"`
	TotalScans      int    `json:"total_scans"`
	RedirectStatus  string `json:"redirect_status"`
	HopCount        int    `json:"hop_count"`
	CheckedAt       int64  `json:"checked_at"`
}
