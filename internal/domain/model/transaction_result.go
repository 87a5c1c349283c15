package model

// TransactionResult is the normalized outcome of a record update submission.
// TxDigest is set iff Success is true; Error is set iff Success is false.
type TransactionResult struct {
	Success  bool   `json:"success"`
	TxDigest string `json:"tx_digest,omitempty"`
	Error    string `json:"error,omitempty"`
}

func Succeeded(digest string) TransactionResult {
	return TransactionResult{Success: true, TxDigest: digest}
}

func Failed(message string) TransactionResult {
	return TransactionResult{Success: false, Error: message}
}
