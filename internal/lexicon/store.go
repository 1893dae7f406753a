package lexicon

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"resume-screen-go/internal/constants"
	"resume-screen-go/internal/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// 定义tracer
var tracer = otel.Tracer("lexicon")

// Set 一次性加载的全量词库快照：岗位技能数据、偏见词库、身份特征词库、自评样本
// 加载后只读，跨并发请求共享无需加锁
type Set struct {
	Taxonomy    *Taxonomy
	Bias        *BiasLexicon
	Demographic *DemographicLexicon
	Evaluation  *EvaluationSet
	Version     string
}

// FileOverrides 各数据文件的路径，留空项使用内置数据
type FileOverrides struct {
	TaxonomyFile           string
	BiasLexiconFile        string
	DemographicLexiconFile string
	EvaluationSamplesFile  string
}

// LoadSet 加载一套完整的词库快照
// 任何一个文件解析失败则整体失败，不会产生半新半旧的数据集
func LoadSet(ctx context.Context, files FileOverrides) (*Set, error) {
	_, span := tracer.Start(ctx, "lexicon.LoadSet")
	defer span.End()

	set, err := loadSet(files)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeLexicon)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("lexicon.version", set.Version),
		attribute.Int("lexicon.roles", len(set.Taxonomy.Roles())),
		attribute.Int("lexicon.bias_categories", len(set.Bias.Categories)),
	)
	return set, nil
}

func loadSet(files FileOverrides) (*Set, error) {
	taxData, err := readOrEmbedded(files.TaxonomyFile, defaultTaxonomyYAML)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: %w", err)
	}
	biasData, err := readOrEmbedded(files.BiasLexiconFile, defaultBiasLexiconYAML)
	if err != nil {
		return nil, fmt.Errorf("bias lexicon: %w", err)
	}
	demoData, err := readOrEmbedded(files.DemographicLexiconFile, defaultDemographicLexiconYAML)
	if err != nil {
		return nil, fmt.Errorf("demographic lexicon: %w", err)
	}
	evalData, err := readOrEmbedded(files.EvaluationSamplesFile, defaultEvaluationSamplesYAML)
	if err != nil {
		return nil, fmt.Errorf("evaluation samples: %w", err)
	}

	taxonomy, err := ParseTaxonomy(taxData)
	if err != nil {
		return nil, err
	}
	bias, err := ParseBiasLexicon(biasData)
	if err != nil {
		return nil, err
	}
	demographic, err := ParseDemographicLexicon(demoData)
	if err != nil {
		return nil, err
	}
	evaluation, err := ParseEvaluationSet(evalData)
	if err != nil {
		return nil, err
	}

	version := taxonomy.Version
	if version == "" {
		version = constants.EmbeddedDataVersion
	}

	return &Set{
		Taxonomy:    taxonomy,
		Bias:        bias,
		Demographic: demographic,
		Evaluation:  evaluation,
		Version:     version,
	}, nil
}

func readOrEmbedded(path string, embedded []byte) ([]byte, error) {
	if path == "" {
		return embedded, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file %s: %w", path, err)
	}
	return data, nil
}

// Store 词库快照的持有者
// 重载是整套快照的原子替换，进行中的请求继续使用其取到的旧快照
type Store struct {
	current atomic.Pointer[Set]
}

// NewStore 用初始快照创建Store
func NewStore(set *Set) *Store {
	s := &Store{}
	s.current.Store(set)
	return s
}

// Current 取当前快照；单个请求应只取一次，整个请求使用同一快照
func (s *Store) Current() *Set {
	return s.current.Load()
}

// Swap 原子替换整套快照
func (s *Store) Swap(set *Set) {
	s.current.Store(set)
}
