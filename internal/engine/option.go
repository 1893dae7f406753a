package engine

import (
	"time"

	"github.com/rs/zerolog"
)

// Components 分析器的组件集合，可在测试中单独替换
type Components struct {
	Extractor   *SkillExtractor
	Scorer      *MatchScorer
	BiasScanner *BiasScanner
	Anonymizer  *Anonymizer
	Evaluator   *BiasEvaluator
}

// Settings 分析器的运行参数
type Settings struct {
	// 单次请求文本（简历+JD）的最大字符数，超出直接拒绝
	MaxInputChars int

	// 单次分析的硬超时
	AnalyzeTimeout time.Duration
}

// ComponentOpt 组件选项类型，仅改变 Components 结构体内的字段
type ComponentOpt func(*Components)

// SettingOpt 设置选项类型，仅改变 Settings 结构体内的字段
type SettingOpt func(*Settings)

// WithExtractor 替换技能提取器组件
func WithExtractor(extractor *SkillExtractor) ComponentOpt {
	return func(c *Components) {
		c.Extractor = extractor
	}
}

// WithScorer 替换匹配评分器组件
func WithScorer(scorer *MatchScorer) ComponentOpt {
	return func(c *Components) {
		c.Scorer = scorer
	}
}

// WithBiasScanner 替换偏见扫描器组件
func WithBiasScanner(scanner *BiasScanner) ComponentOpt {
	return func(c *Components) {
		c.BiasScanner = scanner
	}
}

// WithAnonymizer 替换脱敏器组件
func WithAnonymizer(anonymizer *Anonymizer) ComponentOpt {
	return func(c *Components) {
		c.Anonymizer = anonymizer
	}
}

// WithEvaluator 替换偏见自评器组件
func WithEvaluator(evaluator *BiasEvaluator) ComponentOpt {
	return func(c *Components) {
		c.Evaluator = evaluator
	}
}

// WithMaxInputChars 设置输入字符数上限
func WithMaxInputChars(max int) SettingOpt {
	return func(s *Settings) {
		if max > 0 {
			s.MaxInputChars = max
		}
	}
}

// WithAnalyzeTimeout 设置分析硬超时
func WithAnalyzeTimeout(timeout time.Duration) SettingOpt {
	return func(s *Settings) {
		if timeout > 0 {
			s.AnalyzeTimeout = timeout
		}
	}
}

// defaultComponents 用同一个logger构建全套默认组件
func defaultComponents(logger zerolog.Logger) Components {
	scanner := NewBiasScanner(logger)
	return Components{
		Extractor:   NewSkillExtractor(logger),
		Scorer:      NewMatchScorer(logger),
		BiasScanner: scanner,
		Anonymizer:  NewAnonymizer(logger),
		Evaluator:   NewBiasEvaluator(scanner, logger),
	}
}
