package engine

import (
	"context"
	"fmt"
	"strings"

	"resume-screen-go/internal/lexicon"
	"resume-screen-go/internal/types"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

// BiasEvaluator 用标注样本集对偏见扫描器跑混淆矩阵自评
// 自评只是把扫描器重放在静态样本上，不改变任何词库或扫描行为
type BiasEvaluator struct {
	scanner *BiasScanner
	logger  zerolog.Logger
}

// NewBiasEvaluator 创建自评器，复用给定的偏见扫描器
func NewBiasEvaluator(scanner *BiasScanner, logger zerolog.Logger) *BiasEvaluator {
	return &BiasEvaluator{scanner: scanner, logger: logger}
}

// Evaluate 对样本集逐条重跑偏见扫描，产出混淆矩阵与指标
// 指标保留两位小数；精确率/召回率/F1在分母为0时取0
func (e *BiasEvaluator) Evaluate(ctx context.Context, samples *lexicon.EvaluationSet, lex *lexicon.BiasLexicon) *types.BiasEvaluation {
	ctx, span := tracer.Start(ctx, "engine.EvaluateBias")
	defer span.End()

	eval := &types.BiasEvaluation{Samples: []types.BiasSampleResult{}}
	for _, sample := range samples.Samples {
		predicted := e.scanner.Scan(ctx, sample.Text, lex).Detected
		correct := predicted == sample.Biased
		switch {
		case predicted && sample.Biased:
			eval.TruePositives++
		case !predicted && !sample.Biased:
			eval.TrueNegatives++
		case predicted && !sample.Biased:
			eval.FalsePositives++
		default:
			eval.FalseNegatives++
		}
		eval.Samples = append(eval.Samples, types.BiasSampleResult{
			Text:      sample.Text,
			Predicted: predicted,
			Actual:    sample.Biased,
			Correct:   correct,
		})
	}

	total := len(eval.Samples)
	if total > 0 {
		eval.Accuracy = roundTo2(float64(eval.TruePositives+eval.TrueNegatives) / float64(total))
	}
	if denom := eval.TruePositives + eval.FalsePositives; denom > 0 {
		eval.Precision = roundTo2(float64(eval.TruePositives) / float64(denom))
	}
	if denom := eval.TruePositives + eval.FalseNegatives; denom > 0 {
		eval.Recall = roundTo2(float64(eval.TruePositives) / float64(denom))
	}
	if eval.Precision+eval.Recall > 0 {
		eval.F1 = roundTo2(2 * eval.Precision * eval.Recall / (eval.Precision + eval.Recall))
	}

	span.SetAttributes(
		attribute.Int("evaluate.samples", total),
		attribute.Float64("evaluate.accuracy", eval.Accuracy),
	)
	e.logger.Debug().
		Int("samples", total).
		Float64("accuracy", eval.Accuracy).
		Msg("偏见检测自评完成")

	return eval
}

// SuggestionsFor 根据偏见报告生成中性措辞改写建议
// 每个命中类别两条：先列检出词，再列词库提供的中性替代；类别保持报告顺序
func SuggestionsFor(report *types.BiasReport, lex *lexicon.BiasLexicon) []string {
	if report == nil || !report.Detected {
		return []string{"No strong bias detected."}
	}

	neutralByCategory := make(map[string][]string, len(lex.Categories))
	for _, cat := range lex.Categories {
		neutralByCategory[cat.Name] = cat.Neutral
	}

	suggestions := make([]string, 0, 2*len(report.Matches))
	for _, match := range report.Matches {
		suggestions = append(suggestions,
			fmt.Sprintf("%s-biased wording detected: %s", match.Category, strings.Join(match.Words, ", ")))
		if neutral := neutralByCategory[match.Category]; len(neutral) > 0 {
			suggestions = append(suggestions,
				fmt.Sprintf("Try neutral alternatives: %s", strings.Join(neutral, ", ")))
		}
	}
	return suggestions
}
