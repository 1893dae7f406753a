package engine

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"resume-screen-go/internal/lexicon"
	"resume-screen-go/internal/types"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// analyzerLexiconSet 组一套覆盖三条流水线的完整测试词库
func analyzerLexiconSet(t *testing.T) *lexicon.Set {
	t.Helper()

	tax, err := lexicon.ParseTaxonomy([]byte(`
version: "test-1"
roles:
  - id: backend
    title: Backend Developer
    description: We want a strong, aggressive rockstar developer.
    skills:
      - { name: python, weight: 0.5 }
      - { name: java, weight: 0.5 }
`))
	require.NoError(t, err)

	bias, err := lexicon.ParseBiasLexicon([]byte(`
categories:
  - category: Gender
    terms: [strong, aggressive]
  - category: Personality
    terms: [rockstar]
`))
	require.NoError(t, err)

	demo, err := lexicon.ParseDemographicLexicon([]byte(`
terms: [married, veteran]
`))
	require.NoError(t, err)

	return &lexicon.Set{Taxonomy: tax, Bias: bias, Demographic: demo, Version: "test-1"}
}

func newTestAnalyzer(setOpts ...SettingOpt) *Analyzer {
	return NewAnalyzer(nil, nil, setOpts)
}

func TestAnalyzeSuccess(t *testing.T) {
	a := newTestAnalyzer()
	set := analyzerLexiconSet(t)

	req := &types.AnalyzeRequest{
		JobRole:            "backend",
		ResumeText:         "John Smith\njohn@example.com\nProficient in Python and Java. Married.",
		JobDescriptionText: "Looking for a strong backend developer.",
	}
	result, err := a.Analyze(context.Background(), set, req)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.NotEmpty(t, result.RequestID)

	// 匹配：两项技能全中
	require.NotNil(t, result.Match)
	assert.Equal(t, 100.0, result.Match.Percentage)
	assert.Equal(t, types.TierExcellent, result.Match.Tier)
	assert.ElementsMatch(t, []string{"python", "java"}, result.Match.MatchingSkills)

	// 偏见扫描作用于显式传入的JD文本
	require.NotNil(t, result.Bias)
	assert.True(t, result.Bias.Detected)
	require.Len(t, result.Bias.Matches, 1)
	assert.Equal(t, "Gender", result.Bias.Matches[0].Category)
	assert.Equal(t, []string{"strong"}, result.Bias.Matches[0].Words)

	// 脱敏作用于简历文本
	require.NotNil(t, result.Anonymized)
	assert.NotContains(t, result.Anonymized.Text, "John Smith")
	assert.NotContains(t, result.Anonymized.Text, "john@example.com")
	assert.NotContains(t, result.Anonymized.Text, "Married")
}

func TestAnalyzeJobDescriptionFallback(t *testing.T) {
	a := newTestAnalyzer()
	set := analyzerLexiconSet(t)

	// JD缺省时回退到岗位自带描述，描述里埋了三个偏见词
	req := &types.AnalyzeRequest{
		JobRole:    "backend",
		ResumeText: "Proficient in Python.",
	}
	result, err := a.Analyze(context.Background(), set, req)
	require.NoError(t, err)

	assert.True(t, result.Bias.Detected)
	require.Len(t, result.Bias.Matches, 2)
	assert.Equal(t, "Gender", result.Bias.Matches[0].Category)
	assert.ElementsMatch(t, []string{"strong", "aggressive"}, result.Bias.Matches[0].Words)
	assert.Equal(t, "Personality", result.Bias.Matches[1].Category)
	assert.Equal(t, []string{"rockstar"}, result.Bias.Matches[1].Words)
}

func TestAnalyzeDocumentEmpty(t *testing.T) {
	a := newTestAnalyzer()
	set := analyzerLexiconSet(t)

	for _, resume := range []string{"", "   \n\t  "} {
		req := &types.AnalyzeRequest{JobRole: "backend", ResumeText: resume}
		result, err := a.Analyze(context.Background(), set, req)
		assert.Nil(t, result)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDocumentEmpty))
	}
}

func TestAnalyzeUnknownJobRole(t *testing.T) {
	a := newTestAnalyzer()
	set := analyzerLexiconSet(t)

	req := &types.AnalyzeRequest{JobRole: "astronaut", ResumeText: "Python developer"}
	result, err := a.Analyze(context.Background(), set, req)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownJobRole))
	assert.Contains(t, err.Error(), "astronaut")
}

func TestAnalyzeInputTooLarge(t *testing.T) {
	a := newTestAnalyzer(WithMaxInputChars(100))
	set := analyzerLexiconSet(t)

	req := &types.AnalyzeRequest{
		JobRole:    "backend",
		ResumeText: strings.Repeat("x", 101),
	}
	result, err := a.Analyze(context.Background(), set, req)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputTooLarge))

	// 上限按简历与JD字符数之和计算
	req = &types.AnalyzeRequest{
		JobRole:            "backend",
		ResumeText:         strings.Repeat("x", 60),
		JobDescriptionText: strings.Repeat("y", 60),
	}
	result, err = a.Analyze(context.Background(), set, req)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ErrInputTooLarge))
}

func TestAnalyzeValidationOrder(t *testing.T) {
	a := newTestAnalyzer(WithMaxInputChars(10))
	set := analyzerLexiconSet(t)

	// 超限与未知岗位同时成立时，超限优先上报
	req := &types.AnalyzeRequest{
		JobRole:    "astronaut",
		ResumeText: strings.Repeat("x", 50),
	}
	_, err := a.Analyze(context.Background(), set, req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputTooLarge))
}

func TestAnalyzeNoPartialResults(t *testing.T) {
	a := newTestAnalyzer()
	set := analyzerLexiconSet(t)

	// 失败请求不返回任何部分结果
	req := &types.AnalyzeRequest{JobRole: "nonexistent", ResumeText: "Python"}
	result, err := a.Analyze(context.Background(), set, req)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestAnalyzeCancelledContext(t *testing.T) {
	a := newTestAnalyzer()
	set := analyzerLexiconSet(t)

	// 调用方已取消的上下文：各阶段在入口处让出，请求整体失败且无部分结果
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := &types.AnalyzeRequest{
		JobRole:    "backend",
		ResumeText: "Proficient in Python and Java.",
	}
	result, err := a.Analyze(ctx, set, req)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInternal))
}

func TestAnalyzerComponentOptions(t *testing.T) {
	// 用带缓冲输出的logger构建替身组件，验证替换后的组件真正参与分析
	var buf bytes.Buffer
	stageLogger := zerolog.New(&buf)

	scanner := NewBiasScanner(stageLogger)
	a := NewAnalyzer(nil, []ComponentOpt{
		WithExtractor(NewSkillExtractor(stageLogger)),
		WithScorer(NewMatchScorer(stageLogger)),
		WithBiasScanner(scanner),
		WithAnonymizer(NewAnonymizer(stageLogger)),
		WithEvaluator(NewBiasEvaluator(scanner, stageLogger)),
	}, nil)
	set := analyzerLexiconSet(t)

	req := &types.AnalyzeRequest{
		JobRole:            "backend",
		ResumeText:         "John Smith knows Python and Java.",
		JobDescriptionText: "Looking for a strong developer.",
	}
	result, err := a.Analyze(context.Background(), set, req)
	require.NoError(t, err)
	require.NotNil(t, result)

	logs := buf.String()
	assert.Contains(t, logs, "技能提取完成")
	assert.Contains(t, logs, "偏见扫描完成")
	assert.Contains(t, logs, "简历脱敏完成")

	// 自评器同样走替换后的实例
	set.Evaluation = &lexicon.EvaluationSet{Samples: []lexicon.EvaluationSample{
		{Text: "strong candidate wanted", Biased: true},
		{Text: "engineer wanted", Biased: false},
	}}
	eval := a.EvaluateBias(context.Background(), set)
	require.NotNil(t, eval)
	assert.Equal(t, 1, eval.TruePositives)
	assert.Equal(t, 1, eval.TrueNegatives)
	assert.Contains(t, buf.String(), "偏见检测自评完成")
}

func TestAnalyzerScanBias(t *testing.T) {
	a := newTestAnalyzer()
	set := analyzerLexiconSet(t)

	resp := a.ScanBias(context.Background(), set, "We want a strong rockstar engineer.")
	require.NotNil(t, resp)
	assert.True(t, resp.Detected)
	require.Len(t, resp.Matches, 2)
	assert.Equal(t, "Gender", resp.Matches[0].Category)
	assert.Equal(t, "Personality", resp.Matches[1].Category)
	// 报告后跟每类别的建议行，顺序与报告一致
	require.NotEmpty(t, resp.Suggestions)
	assert.Contains(t, resp.Suggestions[0], "Gender-biased wording detected: strong")

	clean := a.ScanBias(context.Background(), set, "We want a backend engineer.")
	assert.False(t, clean.Detected)
	assert.Equal(t, []string{"No strong bias detected."}, clean.Suggestions)
}
