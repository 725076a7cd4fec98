package batch

// FileRecord is the result ledger entry for one successfully processed file.
type FileRecord struct {
	ID               string  `json:"id"`
	Filename         string  `json:"filename"`
	OriginalSize     int64   `json:"original_size"`
	OptimizedSize    int64   `json:"optimized_size"`
	CompressionRatio float64 `json:"compression_ratio"`
	DownloadURL      string  `json:"download_url"`
	SessionID        string  `json:"session_id"`
}

// CompressionRatio is (1 - output/original) * 100, or 0 for an empty
// original. Negative values mean the output grew.
func CompressionRatio(original, output int64) float64 {
	if original <= 0 {
		return 0
	}
	return (1 - float64(output)/float64(original)) * 100
}

// Result is the outcome of a batch.
type Result struct {
	SessionID string       `json:"session_id"`
	Files     []FileRecord `json:"files"`
}
