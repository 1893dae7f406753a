package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"resume-screen-go/internal/engine"
	"resume-screen-go/internal/tracing"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// 定义tracer
var tracer = otel.Tracer("parser")

// PDFExtractor 从PDF字节流提取纯文本
// 引擎核心只消费UTF-8文本，PDF解析属于边界适配：
// 解析失败映射为DecodeFailure，无文字内容映射为DocumentEmpty
type PDFExtractor struct {
	logger zerolog.Logger
}

// NewPDFExtractor 创建PDF提取器
func NewPDFExtractor(logger zerolog.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger}
}

// ExtractTextFromReader 从io.Reader提取文本和元数据
func (e *PDFExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader) (string, map[string]interface{}, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", nil, engine.NewDecodeFailureError("", fmt.Sprintf("failed to read document stream: %v", err))
	}
	return e.ExtractTextFromBytes(ctx, data)
}

// ExtractTextFromBytes 从字节数组提取文本和元数据
// 逐页提取，单页失败跳过该页；全部页面均无文字（如纯图片扫描件）按空文档处理
func (e *PDFExtractor) ExtractTextFromBytes(ctx context.Context, data []byte) (string, map[string]interface{}, error) {
	ctx, span := tracer.Start(ctx, "parser.ExtractText")
	defer span.End()
	span.SetAttributes(attribute.Int("pdf.bytes", len(data)))

	if len(data) == 0 {
		err := engine.NewDocumentEmptyError("", "empty document")
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		return "", nil, err
	}

	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		decodeErr := engine.NewDecodeFailureError("", fmt.Sprintf("failed to open pdf: %v", err))
		tracing.RecordErrorWithInfo(span, decodeErr, tracing.ErrorTypeDecode,
			attribute.Int("pdf.bytes", len(data)))
		return "", nil, decodeErr
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	pagesWithText := 0
	for i := 1; i <= numPages; i++ {
		if ctx.Err() != nil {
			cancelErr := engine.NewDecodeFailureError("", "extraction cancelled: "+ctx.Err().Error())
			tracing.RecordError(span, cancelErr, tracing.ErrorTypeTimeout)
			return "", nil, cancelErr
		}

		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Warn().
				Int("page", i).
				Err(err).
				Msg("跳过无法提取的PDF页面")
			continue
		}
		if strings.TrimSpace(text) != "" {
			pagesWithText++
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		emptyErr := engine.NewDocumentEmptyError("",
			"no extractable text in pdf; document may be image-based or encrypted")
		tracing.RecordErrorWithInfo(span, emptyErr, tracing.ErrorTypeDecode,
			attribute.Int("pdf.pages", numPages))
		return "", nil, emptyErr
	}

	metadata := map[string]interface{}{
		"pages":           numPages,
		"pages_with_text": pagesWithText,
		"chars":           len(text),
	}
	span.SetAttributes(
		attribute.Int("pdf.pages", numPages),
		attribute.Int("pdf.chars", len(text)),
	)

	e.logger.Debug().
		Int("pages", numPages).
		Int("chars", len(text)).
		Msg("PDF文本提取完成")

	return text, metadata, nil
}
