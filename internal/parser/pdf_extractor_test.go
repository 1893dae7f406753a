package parser

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"resume-screen-go/internal/engine"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextFromBytesEmptyDocument(t *testing.T) {
	e := NewPDFExtractor(zerolog.Nop())

	_, _, err := e.ExtractTextFromBytes(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrDocumentEmpty))

	_, _, err = e.ExtractTextFromBytes(context.Background(), []byte{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrDocumentEmpty))
}

func TestExtractTextFromBytesGarbage(t *testing.T) {
	e := NewPDFExtractor(zerolog.Nop())

	// 非PDF字节流映射为DecodeFailure而不是panic或空文档
	_, _, err := e.ExtractTextFromBytes(context.Background(), []byte("this is not a pdf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrDecodeFailure))
}

func TestExtractTextFromReaderGarbage(t *testing.T) {
	e := NewPDFExtractor(zerolog.Nop())

	_, _, err := e.ExtractTextFromReader(context.Background(), bytes.NewReader([]byte("%PDF-1.4 truncated")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrDecodeFailure))
}
