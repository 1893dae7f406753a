package engine

import (
	"context"
	"strings"

	"resume-screen-go/internal/lexicon"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

// SkillSet 一次提取得到的规范技能名集合，请求级数据
type SkillSet map[string]struct{}

// Contains 集合中是否含有该规范技能名
func (s SkillSet) Contains(skill string) bool {
	_, ok := s[skill]
	return ok
}

// SkillExtractor 按别名表从文本中提取规范技能集合
// 同一文本与同一版本词库的提取结果恒定（纯函数），无技能命中返回空集而非错误
type SkillExtractor struct {
	logger zerolog.Logger
}

// NewSkillExtractor 创建技能提取器
func NewSkillExtractor(logger zerolog.Logger) *SkillExtractor {
	return &SkillExtractor{logger: logger}
}

// Extract 提取文本中出现的全部规范技能
// 词组边界匹配：候选n-gram整体查表，"java"不会命中"javascript"的内部
func (e *SkillExtractor) Extract(ctx context.Context, text string, taxonomy *lexicon.Taxonomy) SkillSet {
	ctx, span := tracer.Start(ctx, "engine.ExtractSkills")
	defer span.End()

	tokens := lexicon.Tokenize(text)
	maxN := taxonomy.MaxPhraseTokens()

	found := make(SkillSet)
	// 对每个起点依次尝试1..maxN元词组；候选数与文本长度线性相关
	// 长文本上按块检查ctx，超时/取消时让出（上层以ctx错误整体失败）
	for i := range tokens {
		if i&1023 == 0 && ctx.Err() != nil {
			break
		}
		for n := 1; n <= maxN && i+n <= len(tokens); n++ {
			phrase := strings.Join(tokens[i:i+n], " ")
			if canonical, ok := taxonomy.CanonicalSkill(phrase); ok {
				found[canonical] = struct{}{}
			}
		}
	}

	span.SetAttributes(
		attribute.Int("extract.tokens", len(tokens)),
		attribute.Int("extract.skills_found", len(found)),
	)
	e.logger.Debug().
		Int("tokens", len(tokens)).
		Int("skills_found", len(found)).
		Msg("技能提取完成")

	return found
}
