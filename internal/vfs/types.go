package vfs

import "time"

// Node represents a file or directory entry under a tenant root.
type Node struct {
	Name     string    `json:"name"`
	Path     string    `json:"path,omitempty"`
	IsDir    bool      `json:"is_dir"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	MIMEType string    `json:"mime_type,omitempty"`
}

// Content is the result of a binary read.
type Content struct {
	Data     []byte `json:"data"`
	MIMEType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// Usage reports a tenant's current disk consumption against the ceiling.
type Usage struct {
	Used      int64 `json:"used"`
	Limit     int64 `json:"limit"`
	Remaining int64 `json:"remaining"`
}
