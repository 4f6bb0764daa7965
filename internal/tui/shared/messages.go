package shared

import (
	"github.com/joe/file-finder/internal/finder"
)

// ============================================================================
// Transition Messages
// These messages trigger screen transitions and are handled by UnifiedScreen
// ============================================================================

// TransitionToScanMsg is sent by the input screen once roots and types are set
type TransitionToScanMsg struct{}

// TransitionToDuplicatesMsg is sent after a scan that found duplicate sets
type TransitionToDuplicatesMsg struct{}

// TransitionToConfirmMsg is sent when the list is ready for review
type TransitionToConfirmMsg struct{}

// TransitionToTransferMsg is sent by the confirm screen to start a batch
type TransitionToTransferMsg struct {
	Request finder.TransferRequest
}

// TransitionToSummaryMsg is sent by the transfer screen when a batch ends
type TransitionToSummaryMsg struct {
	Result *finder.TransferResult
	Err    error
}

// TransitionToInputMsg starts a new session from the summary screen
type TransitionToInputMsg struct{}

// ============================================================================
// Internal Messages
// These messages are used within screens for internal state management
// ============================================================================

// ScanCompleteMsg carries the outcome of a background scan
type ScanCompleteMsg struct {
	Result finder.ScanResult
	Err    error
}

// TransferCompleteMsg carries the outcome of a background transfer
type TransferCompleteMsg struct {
	Result *finder.TransferResult
	Err    error
}

// StatusMsg shows a one-line status on the active screen
type StatusMsg struct {
	Text    string
	IsError bool
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}
