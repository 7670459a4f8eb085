// Package document 提供上传文档的文本提取
package document

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.opentelemetry.io/otel/attribute"

	"edu-studio/internal/config"
	"edu-studio/pkg/logger"
	"edu-studio/pkg/metrics"
	"edu-studio/pkg/tracer"
)

// Extractor PDF 纯文本提取器
type Extractor struct {
	maxPages int
}

// NewExtractor 创建提取器
func NewExtractor(cfg *config.DocumentConfig) *Extractor {
	e := &Extractor{}
	if cfg != nil && cfg.MaxPages > 0 {
		e.maxPages = cfg.MaxPages
	}
	return e
}

// ExtractText 按页序拼接每页纯文本，页间不加分隔符
func (e *Extractor) ExtractText(ctx context.Context, r io.ReaderAt, size int64) (text string, err error) {
	ctx, span := tracer.Start(ctx, "document.ExtractText")
	span.SetAttributes(attribute.Int64("document.size", size))
	defer func() { tracer.End(span, err) }()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	total := reader.NumPage()
	limit := total
	if e.maxPages > 0 && e.maxPages < total {
		limit = e.maxPages
		logger.Warn(ctx, "document truncated to max pages", "pages", total, "max_pages", e.maxPages)
	}

	var sb strings.Builder
	for i := 1; i <= limit; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(pageFonts(page))
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		sb.WriteString(content)
	}

	metrics.DocumentPages.Observe(float64(limit))
	span.SetAttributes(
		attribute.Int("document.pages", limit),
		attribute.Int("document.text_length", sb.Len()),
	)
	logger.Debug(ctx, "document text extracted", "pages", limit, "text_length", sb.Len())
	return sb.String(), nil
}

// ExtractFile 从本地路径提取文本
func (e *Extractor) ExtractFile(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	return e.ExtractText(ctx, f, info.Size())
}

func pageFonts(p pdf.Page) map[string]*pdf.Font {
	fonts := make(map[string]*pdf.Font)
	for _, name := range p.Fonts() {
		f := p.Font(name)
		fonts[name] = &f
	}
	return fonts
}
