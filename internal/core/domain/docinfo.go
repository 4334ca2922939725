package domain

import "time"

// DocumentInfo is a lightweight descriptive record derived purely from
// filesystem metadata and path structure. It is computed on demand and
// never persisted by the inspector itself.
type DocumentInfo struct {
	Filename   string `json:"filename"`
	FilePath   string `json:"file_path"`
	FileSize   int64  `json:"file_size"`
	FileType   string `json:"file_type"`
	Department string `json:"department"`
}

// IsZero reports whether the info is the empty "path not found" result.
func (i DocumentInfo) IsZero() bool {
	return i.Filename == "" && i.FilePath == ""
}

type DocumentStatus string

const (
	StatusIndexed DocumentStatus = "indexed"
	StatusError   DocumentStatus = "error"
)

// DocumentRecord is the catalog row kept per ingested source file.
type DocumentRecord struct {
	DocumentInfo
	PageCount  int            `json:"page_count"`
	ChunkCount int            `json:"chunk_count"`
	Status     DocumentStatus `json:"status"`
	AddedAt    time.Time      `json:"added_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
