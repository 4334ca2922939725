package domain

import (
	"path/filepath"
	"strings"
)

// FileType is the closed set of formats the loader understands.
type FileType string

const (
	FileTypeText        FileType = "txt"
	FileTypePDF         FileType = "pdf"
	FileTypeDOCX        FileType = "docx"
	FileTypeUnsupported FileType = "unsupported"
)

// FileTypeFromPath classifies a path by its extension, case-insensitively.
func FileTypeFromPath(path string) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return FileTypeText
	case ".pdf":
		return FileTypePDF
	case ".docx":
		return FileTypeDOCX
	default:
		return FileTypeUnsupported
	}
}

const DepartmentGeneral = "general"

// DefaultDepartments is the built-in department set. Deployments can extend
// it through configuration; anything outside the known set resolves to
// "general".
func DefaultDepartments() []string {
	return []string{"general", "commercial", "technical", "safety", "regulatory"}
}

// TextUnit is one extracted piece of a source file: a page, a section or a
// whole file. Units are values; transformations return new units instead of
// mutating shared state. Extra carries window/debug annotations added at
// query time and is never required for ingestion.
type TextUnit struct {
	Content    string         `json:"content"`
	Source     string         `json:"source"`
	FilePath   string         `json:"file_path,omitempty"`
	FileType   string         `json:"filetype"`
	Department string         `json:"department"`
	PageNumber int            `json:"page_number,omitempty"`
	Error      bool           `json:"error,omitempty"`
	Extra      map[string]any `json:"extra,omitempty"`
}

// CloneExtra returns a copy of the annotation map safe to mutate.
func (u TextUnit) CloneExtra() map[string]any {
	if len(u.Extra) == 0 {
		return make(map[string]any, 4)
	}
	out := make(map[string]any, len(u.Extra)+4)
	for k, v := range u.Extra {
		out[k] = v
	}
	return out
}

// Chunk is a retrieval-sized split of a TextUnit. ChunkID is the 0-based
// position across the entire split output of one chunking pass, not per
// source file. Error units appended verbatim by the chunker carry
// ChunkID -1 because they never went through splitting.
type Chunk struct {
	TextUnit
	ChunkID int `json:"chunk_id"`
}

// RetrievedChunk is a chunk returned by the vector index with its
// similarity score.
type RetrievedChunk struct {
	Chunk
	Score float64 `json:"score"`
}

// SearchFilter narrows retrieval to one department when set.
type SearchFilter struct {
	Department string
}
