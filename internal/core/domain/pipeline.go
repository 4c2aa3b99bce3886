package domain

// HistoryLimit bounds PipelineStatus.HistoryMessages; the oldest entries
// are discarded first when the bound is exceeded.
const HistoryLimit = 1000

// PipelineStatus is the process-wide singleton describing the currently
// running or most recently completed batch job. It is mutated only by the
// pipeline at job start, per batch step, and at job completion.
type PipelineStatus struct {
	// Autoscanned is set after the first completed input-directory scan.
	Autoscanned bool `json:"autoscanned"`

	// Busy is true while a batch job is in flight.
	Busy bool `json:"busy"`

	// JobName names the running or last job.
	JobName string `json:"job_name"`

	// JobStart is when the job started, RFC 3339. Empty before any job.
	JobStart string `json:"job_start"`

	// Docs is the number of documents in the job.
	Docs int `json:"docs"`

	// Batchs is the total number of batch steps in the job.
	Batchs int `json:"batchs"`

	// CurBatch is the 1-based batch step currently processing.
	CurBatch int `json:"cur_batch"`

	// RequestPending indicates a queued request waiting for the job.
	RequestPending bool `json:"request_pending"`

	// LatestMessage is the most recent progress message.
	LatestMessage string `json:"latest_message"`

	// HistoryMessages holds up to HistoryLimit timestamped messages,
	// oldest first.
	HistoryMessages []string `json:"history_messages"`
}

// NewPipelineStatus returns an idle status with an empty history.
func NewPipelineStatus() *PipelineStatus {
	return &PipelineStatus{HistoryMessages: []string{}}
}

// AppendHistory records a timestamped message, dropping the oldest
// entries beyond HistoryLimit.
func (p *PipelineStatus) AppendHistory(message string) {
	p.HistoryMessages = append(p.HistoryMessages, Now()+" - "+message)
	if excess := len(p.HistoryMessages) - HistoryLimit; excess > 0 {
		p.HistoryMessages = p.HistoryMessages[excess:]
	}
}
