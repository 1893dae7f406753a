package engine

import (
	"context"
	"math"

	"resume-screen-go/internal/constants"
	"resume-screen-go/internal/types"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

// MatchScorer 将提取的技能集合与岗位要求比对，产出百分比、档位和技能清单
type MatchScorer struct {
	logger zerolog.Logger
}

// NewMatchScorer 创建匹配评分器
func NewMatchScorer(logger zerolog.Logger) *MatchScorer {
	return &MatchScorer{logger: logger}
}

// Score 计算简历技能对岗位要求的匹配结果
// 百分比 = 100 × 命中技能权重和 / 岗位全部技能权重和
// 匹配/缺失清单按岗位声明顺序输出；两者并集恒等于岗位技能全集且不相交
func (s *MatchScorer) Score(ctx context.Context, role *types.JobRole, extracted SkillSet) *types.MatchResult {
	_, span := tracer.Start(ctx, "engine.ScoreMatch")
	defer span.End()

	matching := make([]string, 0, len(role.RequiredSkills))
	missing := make([]string, 0, len(role.RequiredSkills))

	var totalWeight, matchedWeight float64
	for _, sw := range role.RequiredSkills {
		totalWeight += sw.Weight
		if extracted.Contains(sw.Name) {
			matchedWeight += sw.Weight
			matching = append(matching, sw.Name)
		} else {
			missing = append(missing, sw.Name)
		}
	}

	var percentage float64
	if totalWeight > 0 {
		percentage = roundTo2(100 * matchedWeight / totalWeight)
	} else {
		// 岗位没有任何技能要求属于配置问题，按0分处理并告警，不中断请求
		s.logger.Warn().
			Str("role", role.ID).
			Msg("岗位未配置任何技能要求，匹配度按0处理")
	}

	tier := tierFor(percentage)

	span.SetAttributes(
		attribute.String("score.role", role.ID),
		attribute.Float64("score.percentage", percentage),
		attribute.String("score.tier", string(tier)),
	)

	return &types.MatchResult{
		Percentage:     percentage,
		Tier:           tier,
		Recommendation: recommendationFor(tier),
		MatchingSkills: matching,
		MissingSkills:  missing,
	}
}

// tierFor 档位划分：边界值归下档（恰好70为Good，恰好40为Limited）
func tierFor(percentage float64) types.Tier {
	switch {
	case percentage > constants.TierExcellentThreshold:
		return types.TierExcellent
	case percentage > constants.TierGoodThreshold:
		return types.TierGood
	default:
		return types.TierLimited
	}
}

// recommendationFor 每个档位对应固定话术
func recommendationFor(tier types.Tier) string {
	switch tier {
	case types.TierExcellent:
		return constants.RecommendationExcellent
	case types.TierGood:
		return constants.RecommendationGood
	default:
		return constants.RecommendationLimited
	}
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
