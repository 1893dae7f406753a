package engine

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"resume-screen-go/internal/constants"
	"resume-screen-go/internal/lexicon"
	"resume-screen-go/internal/types"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
)

// 检测规则，全部在原始文本上独立运行，先算全量span再统一改写
var (
	// 标准邮箱形式
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// 常见电话号码形态：可选国家码、可选分隔符、可带区号括号
	phoneRe = regexp.MustCompile(`(?:\+\d{1,3}[ .\-]?)?(?:\(\d{3}\)[ .\-]?|\b\d{3}[ .\-]?)\d{3}[ .\-]?\d{4}\b`)

	// 姓名启发式一：文档起始处的连续首字母大写词序列
	leadingNameRe = regexp.MustCompile(`^\s*([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+){1,3})`)

	// 姓名启发式二："Name:"标签行的值部分
	nameLabelRe = regexp.MustCompile(`(?mi)^[ \t]*name[ \t]*[:：][ \t]*(.+)$`)

	// 地址启发式一：门牌号+街道名+常见道路后缀，可跟城市/州/邮编
	streetRe = regexp.MustCompile(`\b\d{1,5}[ \t]+[A-Z][A-Za-z]*(?:[ \t]+[A-Z][A-Za-z]*)*[ \t]+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Way|Place|Pl)\.?(?:,[ \t]*[A-Z][A-Za-z]+(?:[ \t]+[A-Z][A-Za-z]+)*)*(?:,?[ \t]+[A-Z]{2}[ \t]+\d{5}(?:-\d{4})?)?`)

	// 地址启发式二："Address:"标签行的值部分
	addressLabelRe = regexp.MustCompile(`(?mi)^[ \t]*address[ \t]*[:：][ \t]*(.+)$`)

	// 年龄自述（词库之外的内置身份特征形态）
	ageStatementRe = regexp.MustCompile(`(?i)\b\d{1,2}[ \-]years?[ \-]old\b|(?i:\bage[ \t]*[:：][ \t]*\d{1,3}\b)`)

	// 已写入的占位符形如[CANDIDATE NAME]，标签行重扫时跳过这类值以保证幂等
	placeholderValueRe = regexp.MustCompile(`^\[[A-Z ]+\]$`)
)

// placeholderFor 每种span类别对应固定的占位符
func placeholderFor(kind types.RedactionKind) string {
	switch kind {
	case types.RedactionName:
		return constants.PlaceholderName
	case types.RedactionEmail:
		return constants.PlaceholderEmail
	case types.RedactionPhone:
		return constants.PlaceholderPhone
	case types.RedactionAddress:
		return constants.PlaceholderAddress
	default:
		return constants.PlaceholderDemographic
	}
}

// Anonymizer 对简历文本做个人信息脱敏
// 一次性在原文上收集全部候选span，消解重叠后单趟从左到右改写，
// 避免逐条替换造成的偏移漂移；对已脱敏文本重跑不产生新的span
type Anonymizer struct {
	logger zerolog.Logger
}

// NewAnonymizer 创建脱敏器
func NewAnonymizer(logger zerolog.Logger) *Anonymizer {
	return &Anonymizer{logger: logger}
}

// Anonymize 输出脱敏后的文本与按原文顺序排列的脱敏记录
func (a *Anonymizer) Anonymize(ctx context.Context, text string, lex *lexicon.DemographicLexicon) *types.AnonymizedDocument {
	ctx, span := tracer.Start(ctx, "engine.Anonymize")
	defer span.End()

	candidates := a.collectCandidates(ctx, text, lex)
	accepted := resolveOverlaps(candidates)

	// 改写用单个builder走一遍原文，span之间的文本原样保留
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for i := range accepted {
		sp := &accepted[i]
		sp.OriginalText = text[sp.Start:sp.End]
		b.WriteString(text[last:sp.Start])
		b.WriteString(placeholderFor(sp.Kind))
		last = sp.End
	}
	b.WriteString(text[last:])

	span.SetAttributes(
		attribute.Int("anonymize.candidates", len(candidates)),
		attribute.Int("anonymize.spans", len(accepted)),
	)
	a.logger.Debug().
		Int("candidates", len(candidates)).
		Int("spans", len(accepted)).
		Msg("简历脱敏完成")

	return &types.AnonymizedDocument{
		Text:  b.String(),
		Spans: accepted,
	}
}

// collectCandidates 各规则独立跑一遍原文，产出全部候选span
// 规则之间检查ctx，请求超时/取消时提前让出（上层以ctx错误整体失败）
func (a *Anonymizer) collectCandidates(ctx context.Context, text string, lex *lexicon.DemographicLexicon) []types.RedactionSpan {
	var candidates []types.RedactionSpan

	add := func(kind types.RedactionKind, locs [][]int) {
		for _, loc := range locs {
			candidates = append(candidates, types.RedactionSpan{Kind: kind, Start: loc[0], End: loc[1]})
		}
	}

	add(types.RedactionEmail, emailRe.FindAllStringIndex(text, -1))
	add(types.RedactionPhone, phoneRe.FindAllStringIndex(text, -1))
	if ctx.Err() != nil {
		return candidates
	}

	// 文档起始的姓名序列：只取捕获组，不含前导空白
	if m := leadingNameRe.FindStringSubmatchIndex(text); m != nil {
		candidates = append(candidates, types.RedactionSpan{
			Kind: types.RedactionName, Start: m[2], End: m[3],
		})
	}
	add(types.RedactionName, labelValueSpans(text, nameLabelRe))

	add(types.RedactionAddress, streetRe.FindAllStringIndex(text, -1))
	add(types.RedactionAddress, labelValueSpans(text, addressLabelRe))

	for _, term := range lex.Terms {
		if ctx.Err() != nil {
			return candidates
		}
		add(types.RedactionDemographic, term.FindAllIndex(text))
	}
	add(types.RedactionDemographic, ageStatementRe.FindAllStringIndex(text, -1))

	return candidates
}

// labelValueSpans 提取标签行的值部分span，值已是占位符时跳过（幂等）
func labelValueSpans(text string, re *regexp.Regexp) [][]int {
	var out [][]int
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[2], m[3]
		// 去掉值末尾的\r与空白
		for end > start {
			c := text[end-1]
			if c == '\r' || c == ' ' || c == '\t' {
				end--
				continue
			}
			break
		}
		if end <= start {
			continue
		}
		if placeholderValueRe.MatchString(text[start:end]) {
			continue
		}
		out = append(out, []int{start, end})
	}
	return out
}

// resolveOverlaps 消解候选span间的重叠：更长者优先，等长取起点更靠左者
// 返回按起点升序排列的互不重叠span集合
func resolveOverlaps(candidates []types.RedactionSpan) []types.RedactionSpan {
	sorted := make([]types.RedactionSpan, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		li, lj := sorted[i].End-sorted[i].Start, sorted[j].End-sorted[j].Start
		if li != lj {
			return li > lj
		}
		return sorted[i].Start < sorted[j].Start
	})

	accepted := make([]types.RedactionSpan, 0, len(sorted))
	for _, cand := range sorted {
		overlap := false
		for _, acc := range accepted {
			if cand.Start < acc.End && acc.Start < cand.End {
				overlap = true
				break
			}
		}
		if !overlap {
			accepted = append(accepted, cand)
		}
	}

	sort.Slice(accepted, func(i, j int) bool {
		return accepted[i].Start < accepted[j].Start
	})
	return accepted
}
