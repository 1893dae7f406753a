package engine

import (
	"context"

	"resume-screen-go/internal/lexicon"
	"resume-screen-go/internal/types"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

// BiasScanner 对岗位描述文本做偏见词扫描
// 大小写不敏感的整词/整词组匹配，只认词库中的精确表面形式
type BiasScanner struct {
	logger zerolog.Logger
}

// NewBiasScanner 创建偏见扫描器
func NewBiasScanner(logger zerolog.Logger) *BiasScanner {
	return &BiasScanner{logger: logger}
}

// Scan 扫描文本，产出按类别聚合的偏见报告
// 类别与词条顺序保持词库声明顺序；零命中的类别整个省略
// 同一词条挂在多个类别下时各类别分别上报，不做全局去重
func (s *BiasScanner) Scan(ctx context.Context, text string, lex *lexicon.BiasLexicon) *types.BiasReport {
	ctx, span := tracer.Start(ctx, "engine.ScanBias")
	defer span.End()

	report := &types.BiasReport{Matches: []types.BiasMatch{}}
	for _, category := range lex.Categories {
		// 请求超时/取消时让出；上层以ctx错误整体失败，不会泄露部分报告
		if ctx.Err() != nil {
			break
		}
		var words []string
		for _, term := range category.Terms {
			if term.MatchString(text) {
				// 命中按词库的规范写法上报，每个词条最多出现一次
				words = append(words, term.Canonical)
			}
		}
		if len(words) > 0 {
			report.Matches = append(report.Matches, types.BiasMatch{
				Category: category.Name,
				Words:    words,
			})
		}
	}
	report.Detected = len(report.Matches) > 0

	span.SetAttributes(
		attribute.Bool("bias.detected", report.Detected),
		attribute.Int("bias.categories_hit", len(report.Matches)),
	)
	s.logger.Debug().
		Bool("detected", report.Detected).
		Int("categories_hit", len(report.Matches)).
		Msg("偏见扫描完成")

	return report
}
