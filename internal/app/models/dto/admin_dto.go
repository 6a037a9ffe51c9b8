package dto

// RowError reports one failed row in a provisioning batch.
type RowError struct {
	Row     int    `json:"row"`
	UserID  string `json:"user_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Message string `json:"message"`
}

// ProvisionResult is the best-effort batch outcome: independent tallies for
// processing, database writes, and email sends, plus truncated error samples.
type ProvisionResult struct {
	Success        bool       `json:"success"`
	TotalProcessed int        `json:"totalProcessed"`
	InsertedInDB   int        `json:"insertedInDB"`
	UpdatedInDB    int        `json:"updatedInDB"`
	DBErrors       int        `json:"dbErrors"`
	EmailsSent     int        `json:"emailsSent"`
	EmailsFailed   int        `json:"emailsFailed"`
	Errors         []RowError `json:"errors,omitempty"`
	EmailErrors    []RowError `json:"emailErrors,omitempty"`
	DownloadURL    string     `json:"downloadUrl,omitempty"`
}

// MaxReportedRowErrors caps how many per-row failures are echoed back.
const MaxReportedRowErrors = 5

// AddRowError appends a database row error, keeping only the first few.
func (r *ProvisionResult) AddRowError(e RowError) {
	r.DBErrors++
	if len(r.Errors) < MaxReportedRowErrors {
		r.Errors = append(r.Errors, e)
	}
}

// AddEmailError appends an email row error, keeping only the first few.
func (r *ProvisionResult) AddEmailError(e RowError) {
	r.EmailsFailed++
	if len(r.EmailErrors) < MaxReportedRowErrors {
		r.EmailErrors = append(r.EmailErrors, e)
	}
}
