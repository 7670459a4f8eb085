package entity

import (
	"io"
	"path/filepath"
	"strings"
)

// UploadedDocument 单次分析请求内有效的上传文件
type UploadedDocument struct {
	Name   string
	Size   int64
	Reader io.ReaderAt
}

// NewUploadedDocument 创建上传文件句柄
func NewUploadedDocument(name string, size int64, r io.ReaderAt) *UploadedDocument {
	return &UploadedDocument{Name: name, Size: size, Reader: r}
}

// IsPDFName 按扩展名判断上传文件是否为 PDF
func IsPDFName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
